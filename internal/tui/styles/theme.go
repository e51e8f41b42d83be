// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Subtle    lipgloss.Color
	Surface   lipgloss.Color
	Selection lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Success   lipgloss.Color
	Match     lipgloss.Color
}

var (
	DarkPalette = Palette{
		Accent:    lipgloss.Color("63"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("245"),
		Subtle:    lipgloss.Color("240"),
		Surface:   lipgloss.Color("235"),
		Selection: lipgloss.Color("237"),
		Error:     lipgloss.Color("196"),
		Warning:   lipgloss.Color("226"),
		Success:   lipgloss.Color("82"),
		Match:     lipgloss.Color("212"),
	}

	LightPalette = Palette{
		Accent:    lipgloss.Color("57"),
		Text:      lipgloss.Color("235"),
		Muted:     lipgloss.Color("242"),
		Subtle:    lipgloss.Color("248"),
		Surface:   lipgloss.Color("254"),
		Selection: lipgloss.Color("153"),
		Error:     lipgloss.Color("160"),
		Warning:   lipgloss.Color("130"),
		Success:   lipgloss.Color("28"),
		Match:     lipgloss.Color("161"),
	}
)

// Theme holds every style the view layer renders with
type Theme struct {
	Dark    bool
	Palette Palette

	Title      lipgloss.Style
	Header     lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Link       lipgloss.Style
	Prompt     lipgloss.Style
	Panel      lipgloss.Style
	Selected   lipgloss.Style
	Match      lipgloss.Style
	Error      lipgloss.Style
	ErrorTitle lipgloss.Style
	Warning    lipgloss.Style
	Success    lipgloss.Style
	Spinner    lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Section    lipgloss.Style
	Language   lipgloss.Style
}

// NewTheme builds the dark or light theme
func NewTheme(dark bool) *Theme {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	return &Theme{
		Dark:    dark,
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(p.Accent).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			PaddingLeft(1),
		Text:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:  lipgloss.NewStyle().Foreground(p.Muted),
		Bold:   lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Link:   lipgloss.NewStyle().Foreground(p.Accent).Underline(true),
		Prompt: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Subtle),
		Selected: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Selection),
		Match:      lipgloss.NewStyle().Foreground(p.Match).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(p.Error),
		ErrorTitle: lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Success:    lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Spinner:    lipgloss.NewStyle().Foreground(p.Accent),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Surface).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(p.Subtle),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Underline(true),
		Language: lipgloss.NewStyle().Foreground(p.Warning),
	}
}

// Toggle returns the opposite theme
func (t *Theme) Toggle() *Theme {
	return NewTheme(!t.Dark)
}

// Name returns "dark" or "light"
func (t *Theme) Name() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}
