//go:build unix

package memtrack

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// ProcessPeakRSS returns the high-water mark of the process resident set
// size in bytes, as reported by getrusage(2).
func ProcessPeakRSS() (uint64, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, false
	}
	maxrss := uint64(ru.Maxrss)
	// Darwin reports bytes, the other unixes kilobytes.
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return maxrss, true
	}
	return maxrss * 1024, true
}
