// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
)

// FormatCount abbreviates n as 1.2K or 3.4M
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatJoined renders an account creation date as "Joined January 2011"
func FormatJoined(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "Joined " + t.Format("January 2006")
}

// FormatUpdated renders a relative timestamp such as "3 days ago"
func FormatUpdated(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Truncate shortens s to width cells, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + "…"
}

// HighlightMatches renders login with the characters matched by query in
// the match style. Logins that do not match are rendered plain.
func HighlightMatches(login, query string, plain, match lipgloss.Style) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return plain.Render(login)
	}

	matches := fuzzy.Find(query, []string{login})
	if len(matches) == 0 {
		return plain.Render(login)
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range login {
		if matched[i] {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}
	return b.String()
}

var languageColors = map[string]lipgloss.Color{
	"Go":         lipgloss.Color("39"),
	"JavaScript": lipgloss.Color("220"),
	"TypeScript": lipgloss.Color("33"),
	"Python":     lipgloss.Color("28"),
	"Java":       lipgloss.Color("166"),
	"C":          lipgloss.Color("245"),
	"C++":        lipgloss.Color("162"),
	"C#":         lipgloss.Color("34"),
	"PHP":        lipgloss.Color("61"),
	"Ruby":       lipgloss.Color("160"),
	"Swift":      lipgloss.Color("208"),
	"Kotlin":     lipgloss.Color("99"),
	"Rust":       lipgloss.Color("173"),
	"Shell":      lipgloss.Color("113"),
	"HTML":       lipgloss.Color("202"),
	"CSS":        lipgloss.Color("97"),
}

// LanguageColor returns the badge color for a repository language
func LanguageColor(language string, fallback lipgloss.Color) lipgloss.Color {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return fallback
}
