package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/devote-org/devote-cli/internal/usecase"
)

// SpinnerSink renders progress on stderr. Spinner events animate until the
// next non-spinner event; terminal stages print a one-line summary.
type SpinnerSink struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	started time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return NewSpinnerSinkWithWriter(os.Stderr)
}

// NewSpinnerSinkWithWriter creates a spinner sink writing to out
func NewSpinnerSinkWithWriter(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{out: out, spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Spinner {
		if !r.spinner.Active() {
			r.started = time.Now()
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + formatEvent(event)
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}

	switch usecase.SubmissionState(event.Stage) {
	case usecase.StateSucceeded:
		fmt.Fprintf(r.out, "%s %s%s\n", color.GreenString("✓"), event.Message, r.elapsed())
	case usecase.StateFailed:
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗"), event.Message)
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.interrupt(func() { fmt.Fprintln(r.out, color.CyanString(message)) })
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.interrupt(func() { fmt.Fprintln(r.out, color.RedString(message)) })
}

// interrupt pauses an active spinner around print
func (r *SpinnerSink) interrupt(print func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) elapsed() string {
	if r.started.IsZero() {
		return ""
	}
	d := time.Since(r.started).Round(time.Millisecond)
	r.started = time.Time{}
	return color.New(color.Faint).Sprintf(" (%s)", d)
}

// formatEvent renders "[3/10] Reading proposal 2" for counted events
func formatEvent(event usecase.ProgressEvent) string {
	if event.Total > 0 {
		return fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}
	return event.Message
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
