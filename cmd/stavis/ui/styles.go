// Package ui provides the visual styling and render components for the
// stavis terminal interface: theme-aware lipgloss styles, the timing report
// table, and the waveform chart.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, same in both modes.
var (
	ColorMet      = lipgloss.Color("#8BC34A") // green: slack met
	ColorViolated = lipgloss.Color("#e53935") // red: slack violated
	ColorSetup    = lipgloss.Color("#FFC107") // orange: setup window marker
	ColorLVT      = lipgloss.Color("#e53935") // LVT rows render red
	ColorHVT      = lipgloss.Color("#8BC34A") // HVT rows render green
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f4f5f6"),
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#2196F3"),
		Muted:      lipgloss.Color("#8a93a3"),
		Border:     lipgloss.Color("#dce0e5"),
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#141d2b"),
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#64b5f6"),
		Accent:     lipgloss.Color("#2196F3"),
		Muted:      lipgloss.Color("#7a8699"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}

// DetectTheme picks light or dark from the terminal environment.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; low background indexes mean a
		// dark terminal.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("STAVIS_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components used across the interface.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Keycap  lipgloss.Style
	Summary lipgloss.Style

	Met      lipgloss.Style
	Violated lipgloss.Style
	Setup    lipgloss.Style
	LVT      lipgloss.Style
	HVT      lipgloss.Style

	TraceLaunch  lipgloss.Style
	TraceCapture lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Keycap: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Summary: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Met:      lipgloss.NewStyle().Foreground(ColorMet).Bold(true),
		Violated: lipgloss.NewStyle().Foreground(ColorViolated).Bold(true),
		Setup:    lipgloss.NewStyle().Foreground(ColorSetup),
		LVT:      lipgloss.NewStyle().Foreground(ColorLVT),
		HVT:      lipgloss.NewStyle().Foreground(ColorHVT),

		TraceLaunch:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac")),
		TraceCapture: lipgloss.NewStyle().Foreground(lipgloss.Color("#e57373")),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
