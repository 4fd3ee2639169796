package ui

// Color accessors return escape codes from the active theme. They exist so
// call sites read semantically ("the error color") rather than by hue.

// ColorReset returns the reset escape code from the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the secondary color from the active theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }
