//go:build !unix

package memtrack

// ProcessPeakRSS is not available on this platform.
func ProcessPeakRSS() (uint64, bool) { return 0, false }
