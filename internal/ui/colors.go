package ui

// Escape-code accessors for the active theme. Callers interleave these
// with text in fmt verbs, e.g.
//
//	fmt.Fprintf(w, "%sdone%s", ui.ColorGreen(), ui.ColorReset())
//
// All return empty strings when colors are disabled.

// ColorCyan returns the accent color code.
func ColorCyan() string { return GetCurrentTheme().Accent }

// ColorDim returns the muted color code.
func ColorDim() string { return GetCurrentTheme().Muted }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBlue returns the info color code.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorBold returns the bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the formatting reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
