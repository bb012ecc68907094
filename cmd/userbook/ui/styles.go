// Package ui provides the terminal styling for the userbook CLI.
// Light and dark palettes share the same semantic colors so success and
// error output reads the same in both.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	lightForeground = lipgloss.Color("#1c2732")
	lightPrimary    = lipgloss.Color("#0f4c81")
	lightMuted      = lipgloss.Color("#8a949e")

	// Dark mode colors
	darkForeground = lipgloss.Color("#e8ecf1")
	darkPrimary    = lipgloss.Color("#6cb2eb")
	darkMuted      = lipgloss.Color("#5c6b7a")

	// Semantic colors, same in both modes
	successColor = lipgloss.Color("#4caf50")
	errorColor   = lipgloss.Color("#e53935")
	warnColor    = lipgloss.Color("#ffc107")
)

// Theme holds a color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Muted:      lightMuted,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Muted:      darkMuted,
		IsDark:     true,
	}
}

// ThemeByName resolves a config theme name; anything but "light" is dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles bundles the rendered styles for the CLI.
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Prompt lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		Body:    lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:    lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(theme.Primary),
		Success: lipgloss.NewStyle().Foreground(successColor),
		Error:   lipgloss.NewStyle().Foreground(errorColor),
		Warning: lipgloss.NewStyle().Foreground(warnColor),
	}
}

// DefaultStyles returns dark mode styles.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
