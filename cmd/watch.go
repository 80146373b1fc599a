package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/gram/cli"
	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/internal/watch"
	"github.com/grovetools/gram/pkg/inputs"
	"github.com/grovetools/gram/render"
	"github.com/grovetools/gram/tui/theme"
)

// NewWatchCmd creates the `watch` command
func NewWatchCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"watch",
		"Re-parse inputs when the grammar changes",
	)
	cmd.Long = `Watches the project grammar file and re-parses the configured input
files whenever it changes. Parse failures are reported with source
positions but do not stop the watch. Press Ctrl-C to stop.`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		cfg, _, err := loadProject(cmd)
		if err != nil {
			return err
		}

		debounce := watch.DefaultDebounce
		if cfg.Watch.Debounce != "" {
			debounce, err = time.ParseDuration(cfg.Watch.Debounce)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid watch.debounce")
			}
		}

		grammarPath := cfg.GrammarPath()

		checkAll := func() {
			g, err := loadGrammar(cfg)
			if err != nil {
				reportFailure(err)
				return
			}

			files, err := inputs.Resolve(cfg, args)
			if err != nil {
				reportFailure(err)
				return
			}

			failed := 0
			for _, filename := range files {
				data, err := os.ReadFile(filename)
				if err != nil {
					reportFailure(errors.InputNotFound(filename))
					failed++
					continue
				}
				if _, _, err := g.Parse(filename, string(data)); err != nil {
					reportFailure(err)
					failed++
				}
			}
			if failed == 0 {
				fmt.Println(theme.RenderStatus("success", fmt.Sprintf("%d file(s) parsed", len(files))))
			}
		}

		checkAll()

		w := &watch.Watcher{
			Path:     grammarPath,
			Debounce: debounce,
			Logger:   logger,
			OnChange: func() error {
				fmt.Println(theme.RenderStatus("info", "grammar changed, re-parsing"))
				checkAll()
				return nil
			},
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.WithField("grammar", grammarPath).Info("watching")
		if err := w.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			return errors.WatchFailed(grammarPath, err)
		}
		return nil
	}

	return cmd
}

func reportFailure(err error) {
	var gramErr *errors.GramError
	if stderrors.As(err, &gramErr) && gramErr.Cause != nil {
		if _, ok := gramErr.Cause.(render.Positioned); ok {
			render.Diagnostic(os.Stderr, gramErr.Cause)
			return
		}
	}
	if _, ok := err.(render.Positioned); ok {
		render.Diagnostic(os.Stderr, err)
		return
	}
	fmt.Fprintln(os.Stderr, theme.RenderStatus("error", err.Error()))
}
