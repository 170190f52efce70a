// Package app wires the fibbench components together: configuration,
// logging, probe observers, the sweep, the summary and the chart. It also
// owns the process lifecycle (signals, timeout) and version information.
package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Release metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/agbru/fibbench/internal/app.Version=v0.3.0 \
//	  -X github.com/agbru/fibbench/internal/app.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/agbru/fibbench/internal/app.BuildDate=$(date -u +%FT%TZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionFlags are accepted anywhere on the command line, before flag
// parsing, so that "-sizes 10 --version" still only prints the version.
var versionFlags = map[string]bool{"--version": true, "-version": true, "-V": true}

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if versionFlags[arg] {
			return true
		}
	}
	return false
}

// VersionData describes the running binary. It is attached to the debug
// event logged before a sweep.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo collects the link-time metadata. A binary installed with
// "go install module@version" carries no ldflags; its module version is
// used instead of "dev".
func GetVersionInfo() VersionData {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return VersionData{
		Version:   v,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes the -version report to out.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "fibbench %s\n", info.Version)
	for _, line := range [][2]string{
		{"Commit:", info.Commit},
		{"Built:", info.BuildDate},
		{"Go version:", info.GoVersion},
		{"OS/Arch:", info.OS + "/" + info.Arch},
	} {
		fmt.Fprintf(out, "  %-11s %s\n", line[0], line[1])
	}
}
