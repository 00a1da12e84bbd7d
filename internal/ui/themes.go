package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for terminal output. Each field holds an
// ANSI escape sequence for one category of output.
type Theme struct {
	// Name identifies the theme.
	Name string
	// Accent is the main highlight color for headings and values.
	Accent string
	// Muted is used for de-emphasized detail lines.
	Muted string
	// Success marks completed operations and positive results.
	Success string
	// Warning marks caution messages.
	Warning string
	// Error marks failures.
	Error string
	// Info marks neutral informational output.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DefaultTheme targets dark terminal backgrounds with a teal accent.
	DefaultTheme = Theme{
		Name:      "default",
		Accent:    "\033[38;5;44m",  // Teal
		Muted:     "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;75m",  // Sky blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker tones for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Accent:    "\033[38;5;30m",  // Dark teal
		Muted:     "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;25m",  // Navy
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output. Used when NO_COLOR is set
	// or --no-color is given.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme. Defaults to DefaultTheme and can
	// be changed via SetTheme or InitTheme.
	currentTheme = DefaultTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss colors for the dashboard. Each field is a
// lipgloss.TerminalColor usable with Style.Foreground and Background.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Path    lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DefaultTUITheme is the teal-dominant dashboard palette.
	DefaultTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B1221"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#00B3A4"),
		Accent:  lipgloss.Color("#2DD4BF"),
		Path:    lipgloss.Color("#FFD75F"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// NoColorTUITheme disables all dashboard colors. lipgloss.NoColor{}
	// renders text with the terminal's defaults.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Path:    lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active
// theme: NoColorTUITheme when colors are disabled, DefaultTUITheme
// otherwise.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DefaultTUITheme
}

// GetCurrentTheme returns the active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Primarily used by tests to
// restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Valid names are "default",
// "light", and "none". Unknown names fall back to the default theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DefaultTheme
	}
}

// InitTheme selects the theme from the noColor flag and the NO_COLOR
// environment variable (https://no-color.org/). Setting NO_COLOR to any
// value disables colors.
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
	currentTheme = DefaultTheme
}
