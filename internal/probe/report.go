package probe

import (
	"fmt"
	"io"
)

// WriteReport prints the fixed-format report of a measurement:
//
//	<label>:
//	Result: <F(n)>
//	Time taken: <seconds, 8 decimals> seconds
//	Memory used by memoization cache: <bytes> bytes   (cache reporters only)
//	Current memory usage: <MB, 6 decimals> MB
//	Peak memory usage: <MB, 6 decimals> MB
//
// A blank line precedes the label.
func WriteReport(w io.Writer, m Measurement) {
	fmt.Fprintf(w, "\n%s:\n", m.Label)
	fmt.Fprintf(w, "Result: %s\n", m.Result.String())
	fmt.Fprintf(w, "Time taken: %.8f seconds\n", m.Elapsed.Seconds())
	if m.HasCache {
		fmt.Fprintf(w, "Memory used by memoization cache: %d bytes\n", m.CacheBytes)
	}
	fmt.Fprintf(w, "Current memory usage: %.6f MB\n", m.CurrentMB())
	fmt.Fprintf(w, "Peak memory usage: %.6f MB\n", m.PeakMB())
}
