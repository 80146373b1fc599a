// Package profiling provides opt-in timing and pprof capture for gram
// commands. Timing is a flat per-label aggregate, cheap enough to leave
// the Start calls in hot paths permanently.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type noopStopper struct{}

func (noopStopper) Stop() {}

type span struct {
	label string
	start time.Time
	timer *Timer
}

func (s *span) Stop() {
	s.timer.record(s.label, time.Since(s.start))
}

type entry struct {
	total time.Duration
	count int
}

// Timer aggregates span durations by label.
type Timer struct {
	mu      sync.Mutex
	enabled bool
	entries map[string]*entry
}

var defaultTimer = &Timer{}

// Enable turns on the global timer. Until enabled, Start is a no-op.
func Enable() {
	defaultTimer.mu.Lock()
	defer defaultTimer.mu.Unlock()
	defaultTimer.enabled = true
	if defaultTimer.entries == nil {
		defaultTimer.entries = map[string]*entry{}
	}
}

// Start begins a timed span, typically stopped with defer.
func Start(label string) Stopper {
	defaultTimer.mu.Lock()
	enabled := defaultTimer.enabled
	defaultTimer.mu.Unlock()

	if !enabled {
		return noopStopper{}
	}
	return &span{label: label, start: time.Now(), timer: defaultTimer}
}

func (t *Timer) record(label string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[label]
	if !ok {
		e = &entry{}
		t.entries[label] = e
	}
	e.total += d
	e.count++
}

// Summarize prints the aggregated timings sorted by total duration.
func Summarize(w io.Writer) {
	defaultTimer.mu.Lock()
	defer defaultTimer.mu.Unlock()

	if !defaultTimer.enabled || len(defaultTimer.entries) == 0 {
		return
	}

	labels := make([]string, 0, len(defaultTimer.entries))
	for label := range defaultTimer.entries {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return defaultTimer.entries[labels[i]].total > defaultTimer.entries[labels[j]].total
	})

	fmt.Fprintln(w, "timing summary:")
	for _, label := range labels {
		e := defaultTimer.entries[label]
		fmt.Fprintf(w, "  %-30s %10s  (%d calls)\n", label, e.total.Round(time.Microsecond), e.count)
	}
}
