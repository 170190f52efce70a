// Package chart renders sweep timings as a line chart with a base-10
// logarithmic time axis.
package chart

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
)

const (
	// DefaultOutput is the chart file written when none is configured.
	DefaultOutput = "fibonacci_performance.png"

	// MinPlottableSeconds replaces timings that rounded down to zero, which
	// a log axis cannot show.
	MinPlottableSeconds = 1e-6

	Title  = "Fibonacci Performance Comparison"
	XLabel = "Input Size (n)"
	YLabel = "Time Taken (seconds, log scale)"
)

// Width and Height are the dimensions of the saved chart.
var (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

// ErrNoData is returned when no series holds a finite timing.
var ErrNoData = errors.New("chart: no data points to plot")

// SupportedFormats lists the file extensions gonum/plot can encode.
var SupportedFormats = []string{"eps", "jpeg", "jpg", "pdf", "png", "svg", "tif", "tiff"}

// Line is one named series of timings, index-aligned with Series.Sizes.
// NaN entries are left out of the drawing.
type Line struct {
	Label   string
	Seconds []float64
}

// Series is the data drawn on one chart.
type Series struct {
	Sizes []uint64
	Lines []Line
}

// NewSeries builds the standard comparison of the unoptimized and memoized
// variants.
func NewSeries(sizes []uint64, unoptimized, memoized []float64) Series {
	return Series{
		Sizes: sizes,
		Lines: []Line{
			{Label: fibonacci.LabelRecursive, Seconds: unoptimized},
			{Label: fibonacci.LabelMemoized, Seconds: memoized},
		},
	}
}

// ValidateOutput checks that path has an extension the renderer supports.
func ValidateOutput(path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return apperrors.NewValidationError("plot", "missing file extension", path)
	}
	if !slices.Contains(SupportedFormats, ext) {
		return apperrors.NewValidationError("plot",
			fmt.Sprintf("unsupported format %q (supported: %s)", ext, strings.Join(SupportedFormats, ", ")), path)
	}
	return nil
}

// Render draws series and saves it to every output path. The format of each
// file follows its extension. Outputs are rendered concurrently, each from
// its own plot.
//
// Parameters:
//   - series: The sizes and the timing lines to draw.
//   - outputs: Destination files; none means DefaultOutput.
//
// Returns:
//   - error: ErrNoData if nothing is plottable, a validation error for a bad
//     extension, or the first save error.
func Render(series Series, outputs ...string) error {
	if len(outputs) == 0 {
		outputs = []string{DefaultOutput}
	}
	for _, out := range outputs {
		if err := ValidateOutput(out); err != nil {
			return err
		}
	}
	for _, l := range series.Lines {
		if len(l.Seconds) != len(series.Sizes) {
			return fmt.Errorf("chart: line %q has %d points for %d sizes", l.Label, len(l.Seconds), len(series.Sizes))
		}
	}
	if !hasData(series) {
		return ErrNoData
	}

	var g errgroup.Group
	for _, out := range outputs {
		g.Go(func() error {
			p, err := build(series)
			if err != nil {
				return err
			}
			if err := p.Save(Width, Height, out); err != nil {
				return apperrors.WrapError(err, "saving chart to %s", out)
			}
			return nil
		})
	}
	return g.Wait()
}

func build(series Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Tick.Marker = sizeTicks(series.Sizes)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	var all []float64
	for i, l := range series.Lines {
		pts := points(series.Sizes, l.Seconds)
		if len(pts) == 0 {
			continue
		}
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		c := plotutil.Color(i)
		line.Color = c
		line.Width = vg.Points(2)
		scatter.Color = c
		scatter.Shape = plotutil.Shape(i)
		scatter.Radius = vg.Points(3)
		p.Add(line, scatter)
		p.Legend.Add(l.Label, line, scatter)

		for _, pt := range pts {
			all = append(all, pt.Y)
		}
	}

	p.Y.Min, p.Y.Max = logRange(all)
	return p, nil
}

// points converts a timing line to plot coordinates, dropping NaN and
// infinite entries and flooring the rest at MinPlottableSeconds.
func points(sizes []uint64, seconds []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(seconds))
	for i, s := range seconds {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(sizes[i]), Y: max(s, MinPlottableSeconds)})
	}
	return pts
}

func hasData(series Series) bool {
	for _, l := range series.Lines {
		if len(points(series.Sizes, l.Seconds)) > 0 {
			return true
		}
	}
	return false
}

// logRange returns strictly positive axis bounds spanning ys. A single
// value gets one decade on each side.
func logRange(ys []float64) (lo, hi float64) {
	lo, hi = floats.Min(ys), floats.Max(ys)
	if lo == hi {
		return lo / 10, hi * 10
	}
	return lo, hi
}

// sizeTicks places one labelled tick on each swept size.
type sizeTicks []uint64

// Ticks implements plot.Ticker.
func (t sizeTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(t))
	for _, n := range t {
		v := float64(n)
		if v < lo || v > hi {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatUint(n, 10)})
	}
	return ticks
}
