// Package ui holds the terminal color theme shared by the CLI output and
// the usage text. Colors are plain ANSI escape codes; the no-color theme
// replaces every code with an empty string.
package ui

import (
	"os"
	"sync"
)

// Theme defines a color scheme for terminal output.
type Theme struct {
	Name string
	// Primary highlights variant labels and flag names.
	Primary string
	// Secondary is used for defaults and secondary figures.
	Secondary string
	Success   string
	Warning   string
	Error     string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme is the default theme, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is given.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme for this run. Colors are disabled when
// noColor is true or when the NO_COLOR environment variable is present
// (https://no-color.org/), whatever its value.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
