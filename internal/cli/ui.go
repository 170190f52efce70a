// Package cli formats the human-facing parts of a fibbench run that are not
// per-measurement reports: the configuration banner, the comparison
// summary and the spinner shown while charts are rendered.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/ui"
)

// SpinnerRefreshRate is the animation interval of the rendering spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Color helpers delegating to the active ui theme.

func ColorReset() string     { return ui.ColorReset() }
func ColorRed() string       { return ui.ColorRed() }
func ColorGreen() string     { return ui.ColorGreen() }
func ColorYellow() string    { return ui.ColorYellow() }
func ColorBlue() string      { return ui.ColorBlue() }
func ColorGrey() string      { return ui.ColorGrey() }
func ColorBold() string      { return ui.ColorBold() }
func ColorUnderline() string { return ui.ColorUnderline() }

// Spinner abstracts the terminal spinner so tests can substitute it.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// WithSpinner runs fn while a spinner labelled with message animates on out,
// then prints a completion line with the elapsed time.
//
// Parameters:
//   - out: Destination of the spinner and of the completion line.
//   - message: Text shown next to the spinner.
//   - fn: The work to run.
//
// Returns:
//   - error: The error returned by fn.
func WithSpinner(out io.Writer, message string, fn func() error) error {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + message)
	start := time.Now()
	s.Start()
	err := fn()
	s.Stop()

	if err != nil {
		fmt.Fprintf(out, "%s✗ %s failed%s\n", ColorRed(), message, ColorReset())
		return err
	}
	fmt.Fprintf(out, "%s✓ %s%s (%s)\n", ColorGreen(), message, ColorReset(), FormatExecutionDuration(time.Since(start)))
	return nil
}
