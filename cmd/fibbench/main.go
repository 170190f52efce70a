// Command fibbench benchmarks recursive, memoized and iterative Fibonacci
// implementations over a set of input sizes and charts the timings.
package main

import (
	"context"
	"io"
	"os"

	"github.com/agbru/fibbench/internal/app"
	apperrors "github.com/agbru/fibbench/internal/errors"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), stdout)
}
