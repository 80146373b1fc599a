// Package watch re-runs a callback when a file changes on disk, with
// debouncing so editors that write in several steps trigger one run.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single file. The parent directory is watched rather
// than the file itself, since editors commonly replace files by rename,
// which drops inotify watches on the old inode.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *logrus.Entry

	// OnChange runs after each debounced change. Errors are logged, not
	// fatal: the watch keeps running so the user can fix the file.
	OnChange func() error
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dir := filepath.Dir(w.Path)
	if err := fsw.Add(dir); err != nil {
		return err
	}

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if w.Logger != nil {
				w.Logger.WithField("event", event.Op.String()).Debug("grammar file changed")
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.Logger != nil {
				w.Logger.WithError(err).Warn("watch error")
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.OnChange(); err != nil && w.Logger != nil {
				w.Logger.WithError(err).Error("check failed")
			}
		}
	}
}
