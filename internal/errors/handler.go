package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with ui.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Red() string    { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleError prints a status line for a failed run and maps the error to
// the process exit code.
//
// Parameters:
//   - err: The error that terminated the run (nil means success).
//   - out: The io.Writer to which the status message will be written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The exit code for the error type.
func HandleError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorTimeout
	}
	if IsContextError(err) {
		fmt.Fprintf(out, "%sStatus: Canceled. The sweep was interrupted.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	}

	var cfgErr ConfigError
	var valErr ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sStatus: Failure.%s An unexpected error occurred: %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}
