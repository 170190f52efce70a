package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibbench/internal/chart"
	"github.com/agbru/fibbench/internal/cli"
	"github.com/agbru/fibbench/internal/config"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/probe"
	"github.com/agbru/fibbench/internal/sweep"
	"github.com/agbru/fibbench/internal/ui"
)

// Application is a configured fibbench run.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Registry provides the variants to benchmark.
	Registry *fibonacci.Registry
	// Logger receives diagnostics; it writes to ErrWriter.
	Logger logging.Logger
	// Metrics collects probe metrics when -metrics is set.
	Metrics *prometheus.Registry
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates an Application by parsing command-line arguments.
//
// Parameters:
//   - args: The command-line arguments, program name first (typically os.Args).
//   - errWriter: The writer for usage, errors and logs.
//
// Returns:
//   - *Application: A new application instance.
//   - error: flag.ErrHelp, a flag parsing error or a configuration error.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "fibbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, apperrors.NewValidationError("log-level", err.Error(), cfg.LogLevel)
	}

	return &Application{
		Config:    cfg,
		Registry:  fibonacci.NewRegistry(cfg.ToOptions()),
		Logger:    logging.New(errWriter, level, cfg.NoColor),
		Metrics:   prometheus.NewRegistry(),
		ErrWriter: errWriter,
	}, nil
}

// Run executes the sweep, prints the summary, renders the chart and, when
// requested, the metrics.
//
// Parameters:
//   - ctx: The parent context; SIGINT/SIGTERM and -timeout cancel it.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, cancel := a.setupLifecycle(ctx)
	defer cancel()

	p := probe.New(out, probe.NewLoggingObserver(a.Logger))
	if a.Config.Metrics {
		p.Subject().Register(probe.NewMetricsObserver(a.Metrics))
	}

	if !a.Config.SingleRun {
		cli.PrintExecutionConfig(a.Config, a.Registry.Variants(), a.ErrWriter)
	}
	info := GetVersionInfo()
	a.Logger.Debug("starting sweep",
		logging.String("version", info.Version),
		logging.String("go", info.GoVersion),
		logging.Int("sizes", len(a.Config.Sizes)),
		logging.Int("max_depth", a.Config.MaxDepth),
		logging.Int("observers", p.Subject().ObserverCount()),
		logging.String("variants", strings.Join(a.Registry.Keys(), ",")))

	res, err := sweep.NewDriver(a.Registry, p, out, a.Logger).Run(ctx, a.Config.Sizes)
	if err != nil {
		a.Logger.Error("sweep failed", err)
		return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
	}

	if !a.Config.SingleRun {
		cli.PrintComparisonSummary(res, out)
		cli.PrintPeakRSS(out)
	}

	if a.Config.RenderChart() {
		if err := a.renderChart(res, out); err != nil {
			return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
	}

	if a.Config.Metrics {
		fmt.Fprintln(out)
		if err := probe.WriteMetrics(out, a.Metrics); err != nil {
			return apperrors.HandleError(apperrors.WrapError(err, "writing metrics"), a.ErrWriter, cli.CLIColorProvider{})
		}
	}
	return apperrors.ExitSuccess
}

func (a *Application) setupLifecycle(ctx context.Context) (context.Context, func()) {
	if a.Config.Timeout > 0 {
		ctx, funcs := SetupLifecycle(ctx, a.Config.Timeout)
		return ctx, funcs.Cleanup
	}
	ctx, stop := SetupSignals(ctx)
	return ctx, stop
}

// renderChart draws the unoptimized and memoized series. The spinner runs on
// ErrWriter; saved paths go to out. A sweep with nothing plottable only logs
// a warning.
func (a *Application) renderChart(res sweep.Result, out io.Writer) error {
	series := chart.NewSeries(res.Sizes, res.Unoptimized, res.Memoized)
	fmt.Fprintln(a.ErrWriter)
	err := cli.WithSpinner(a.ErrWriter, "Rendering chart", func() error {
		return chart.Render(series, a.Config.PlotOutputs...)
	})
	if errors.Is(err, chart.ErrNoData) {
		a.Logger.Warn("chart skipped: no plottable timings")
		return nil
	}
	if err != nil {
		return err
	}
	for _, path := range a.Config.PlotOutputs {
		fmt.Fprintf(out, "Chart saved to: %s%s%s\n", cli.ColorGrey(), path, cli.ColorReset())
	}
	return nil
}

// IsHelpError reports whether err comes from -h or -help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
