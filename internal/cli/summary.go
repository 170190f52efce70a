package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agbru/fibbench/internal/memtrack"
	"github.com/agbru/fibbench/internal/sweep"
)

// VariantStats aggregates the timings of one variant.
type VariantStats struct {
	Label   string
	Runs    int
	Skipped int
	// Mean and Total are in seconds over the completed runs.
	Mean  float64
	Total float64
}

// Summarize computes per-variant statistics, ignoring skipped (NaN) entries.
func Summarize(res sweep.Result) []VariantStats {
	stats := make([]VariantStats, len(res.Variants))
	for i, v := range res.Variants {
		completed := finite(v.Seconds)
		s := VariantStats{Label: v.Label, Runs: len(completed), Skipped: v.Skipped}
		if len(completed) > 0 {
			s.Mean = stat.Mean(completed, nil)
			s.Total = floats.Sum(completed)
		}
		stats[i] = s
	}
	return stats
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// PrintComparisonSummary prints one row per variant with its run count,
// skipped count, mean and total time.
//
// Parameters:
//   - res: The sweep result.
//   - out: The writer for standard output.
func PrintComparisonSummary(res sweep.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sVariant%s\t%sRuns%s\t%sSkipped%s\t%sMean%s\t%sTotal%s\n",
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset(),
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset())

	for _, s := range Summarize(res) {
		mean, total := "-", "-"
		if s.Runs > 0 {
			mean = formatSeconds(s.Mean)
			total = formatSeconds(s.Total)
		}
		skipped := fmt.Sprintf("%d", s.Skipped)
		if s.Skipped > 0 {
			skipped = ColorYellow() + skipped + ColorReset()
		}
		fmt.Fprintf(tw, "%s%s%s\t%d\t%s\t%s\t%s\n",
			ColorBlue(), s.Label, ColorReset(), s.Runs, skipped, mean, total)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

// formatSeconds renders a timing in seconds with FormatExecutionDuration.
// Timings below the microsecond resolution are shown as "< 1µs".
func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second))
	if d < time.Microsecond {
		return "< 1µs"
	}
	return FormatExecutionDuration(d)
}

// PrintPeakRSS prints the process peak resident set size when the platform
// reports it.
func PrintPeakRSS(out io.Writer) {
	rss, ok := memtrack.ProcessPeakRSS()
	if !ok {
		return
	}
	fmt.Fprintf(out, "\nProcess peak RSS: %s%.2f MB%s\n", ColorGrey(), memtrack.BytesToMB(rss), ColorReset())
}
