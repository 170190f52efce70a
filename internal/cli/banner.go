package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// PrintExecutionConfig displays the sweep parameters before the first probe.
//
// Parameters:
//   - cfg: The application configuration.
//   - variants: The variants about to be probed, in order.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, variants []fibonacci.Variant, out io.Writer) {
	fmt.Fprintf(out, "%s--- Benchmark Configuration ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Input sizes: %s%s%s (recursion limit %s%d%s).\n",
		ColorBlue(), formatSizes(cfg.Sizes), ColorReset(), ColorYellow(), cfg.MaxDepth, ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorGrey(), runtime.NumCPU(), ColorReset(), ColorGrey(), runtime.Version(), ColorReset())

	labels := make([]string, len(variants))
	for i, v := range variants {
		labels[i] = v.Label
	}
	fmt.Fprintf(out, "Variants: %s.\n", strings.Join(labels, ", "))
	fmt.Fprintf(out, "\n%s--- Starting Sweep ---%s\n", ColorBold(), ColorReset())
}

func formatSizes(sizes []uint64) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.FormatUint(n, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
