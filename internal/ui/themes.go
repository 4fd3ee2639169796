// Package ui provides terminal color theming for the presentation layers.
// It keeps ANSI escape codes out of the business logic: callers ask the
// active theme for a semantic color (success, error, ...) and get either an
// escape code or the empty string when colors are disabled.
package ui

import (
	"os"
	"sync"
)

// Theme is a set of ANSI escape codes keyed by semantic role.
type Theme struct {
	// Name identifies the theme.
	Name string
	// Primary is the accent color for headings and key figures.
	Primary string
	// Secondary is used for supporting detail.
	Secondary string
	// Success marks agreeing results and completed runs.
	Success string
	// Warning marks degraded but non-fatal conditions.
	Warning string
	// Error marks failures and result mismatches.
	Error string
	// Info is used for informational notes.
	Info string
	// Bold and Underline are text attributes.
	Bold      string
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme targets dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme renders everything unstyled. Active when the --no-color
	// flag or the NO_COLOR environment variable is set.
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

// SetCurrentTheme replaces the active theme. Used by tests to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme from the noColor flag and the NO_COLOR
// environment variable (https://no-color.org/). The flag wins; any
// non-empty NO_COLOR also disables colors.
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
