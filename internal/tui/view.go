// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/finder"
	"github.com/ghfinder/ghfinder-cli/internal/models"
	"github.com/ghfinder/ghfinder-cli/internal/tui/keymap"
)

const defaultWidth = 80

// screenLayout records where the interactive regions were drawn
type screenLayout struct {
	inputRow     int
	panelVisible bool
	panelTop     int
	panelBottom  int
	listTop      int
}

// View implements tea.Model
func (a *App) View() string {
	top, _ := a.renderTop()
	sections := []string{top}

	if a.session.Committed() != "" {
		sections = append(sections, a.renderRepositories(a.repoRows()))
	}
	sections = append(sections, a.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return defaultWidth
	}
	return a.width
}

// renderTop draws everything above the repository rows and reports the
// row offsets of the clickable regions.
func (a *App) renderTop() (string, screenLayout) {
	var lines []string
	var layout screenLayout

	lines = append(lines, a.renderHeader(), "")

	layout.inputRow = len(lines)
	lines = append(lines, a.renderInput())

	panel := a.session.SuggestionPanelView()
	if panel.Visible {
		rendered := a.renderSuggestions(panel)
		layout.panelVisible = true
		layout.panelTop = len(lines)
		lines = append(lines, strings.Split(rendered, "\n")...)
		layout.panelBottom = len(lines) - 1
	}

	if a.input.Value() == "" && a.session.Committed() == "" {
		lines = append(lines, a.renderQuickPicks())
	}

	if a.session.Committed() != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(a.renderProfile(), "\n")...)
		lines = append(lines, "", a.renderRepositoryHeader())
	}
	layout.listTop = len(lines)

	return strings.Join(lines, "\n"), layout
}

func (a *App) layout() screenLayout {
	_, l := a.renderTop()
	return l
}

// repoRows is the number of repositories that fit below the top section
func (a *App) repoRows() int {
	if a.height <= 0 {
		return 0
	}
	top, _ := a.renderTop()
	// footer line and status bar
	free := a.height - lipgloss.Height(top) - 2
	if a.showHelp {
		free -= lipgloss.Height(a.help.FullHelpView(a.keys.FullHelp())) - 1
	}
	return max(free/repoRowHeight, 1)
}

func (a *App) renderHeader() string {
	title := a.theme.Title.Render("GitHub Profile Finder")
	theme := a.theme.Muted.Render(" " + a.theme.Name() + " theme")
	return title + theme
}

func (a *App) renderInput() string {
	line := a.input.View()
	panel := a.session.SuggestionPanelView()
	if panel.Searching || a.session.Autocomplete().SearchPending() {
		line += " " + a.spinner.View()
	}
	return line
}

func (a *App) renderQuickPicks() string {
	parts := make([]string, len(keymap.QuickPicks))
	for i, handle := range keymap.QuickPicks {
		parts[i] = a.theme.Prompt.Render(fmt.Sprintf("%d", i+1)) + " " + a.theme.Text.Render(handle)
	}
	return a.theme.Muted.Render("Try: ") + strings.Join(parts, a.theme.Muted.Render("  "))
}

func (a *App) renderSuggestions(panel finder.SuggestionPanelView) string {
	width := min(a.contentWidth()-2, 50)
	var rows []string

	if panel.NoResults {
		rows = append(rows, a.theme.Muted.Render("No users found"))
	}

	end := min(a.suggestionOffset+panelRows, len(panel.Items))
	for i := a.suggestionOffset; i < end; i++ {
		item := panel.Items[i]
		login := HighlightMatches(item.Login, panel.Query, a.theme.Text, a.theme.Match)
		row := "  " + login
		if a.focus == focusSuggestions && i == a.suggestionIndex {
			row = a.theme.Selected.Render("▸ ") + login
		}
		rows = append(rows, row)
	}

	switch {
	case panel.LoadingMore:
		rows = append(rows, a.spinner.View()+a.theme.Muted.Render(" Loading more..."))
	case len(panel.Items) > panelRows:
		rows = append(rows, a.theme.Muted.Render(fmt.Sprintf("  %d of %d", a.suggestionIndex+1, len(panel.Items))))
	}

	return a.theme.Panel.Width(width).Render(strings.Join(rows, "\n"))
}

func (a *App) renderProfile() string {
	view := a.session.ProfileView()

	switch view.Status {
	case finder.StatusLoading:
		return a.spinner.View() + a.theme.Muted.Render(" Loading profile for @"+a.session.Committed()+"...")
	case finder.StatusError:
		return a.renderError(view.ErrKind, view.Err)
	case finder.StatusLoaded:
		if view.Profile != nil {
			return a.renderProfileCard(view.Profile)
		}
	}
	return ""
}

func (a *App) renderError(kind errors.Kind, err error) string {
	lines := []string{
		a.theme.ErrorTitle.Render(errors.Titles[kind]),
		a.theme.Error.Render(errors.FormatUserError(err)),
		a.theme.Muted.Render("Press r to retry, / to search again"),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderProfileCard(p *models.Profile) string {
	width := a.contentWidth()
	var lines []string

	lines = append(lines, a.theme.Bold.Render(p.DisplayName())+" "+a.theme.Muted.Render("@"+p.Login))
	if bio := strings.TrimSpace(p.Bio); bio != "" {
		lines = append(lines, a.theme.Text.Render(Truncate(bio, width)))
	}

	var meta []string
	if p.Company != "" {
		meta = append(meta, p.Company)
	}
	if p.Location != "" {
		meta = append(meta, p.Location)
	}
	if blog := p.BlogURL(); blog != "" {
		meta = append(meta, a.theme.Link.Render(blog))
	}
	if joined := FormatJoined(p.CreatedAt); joined != "" {
		meta = append(meta, joined)
	}
	if len(meta) > 0 {
		lines = append(lines, a.theme.Muted.Render(strings.Join(meta, " · ")))
	}

	stat := func(label string, n int) string {
		return a.theme.Bold.Render(FormatCount(n)) + " " + a.theme.Muted.Render(label)
	}
	lines = append(lines, strings.Join([]string{
		stat("repos", p.PublicRepos),
		stat("followers", p.Followers),
		stat("following", p.Following),
		stat("gists", p.PublicGists),
	}, "   "))

	if p.HTMLURL != "" {
		lines = append(lines, a.theme.Link.Render(p.HTMLURL))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderRepositoryHeader() string {
	list := a.session.RepositoryListView()
	header := a.theme.Section.Render("Repositories")
	if n := len(list.Items); n > 0 {
		header += a.theme.Muted.Render(fmt.Sprintf(" (%d loaded)", n))
	}
	return header
}

func (a *App) renderRepositories(rows int) string {
	list := a.session.RepositoryListView()

	if len(list.Items) == 0 {
		switch {
		case list.Status == finder.StatusLoading:
			return a.spinner.View() + a.theme.Muted.Render(" Loading repositories...")
		case list.Status == finder.StatusError:
			return a.renderError(list.ErrKind, list.Err)
		case list.Empty:
			return a.theme.Muted.Render("No Public Repositories")
		}
		return ""
	}

	if rows <= 0 {
		rows = len(list.Items)
	}
	end := min(a.repoOffset+rows, len(list.Items))

	var lines []string
	for i := a.repoOffset; i < end; i++ {
		selected := a.focus == focusRepositories && i == a.repoIndex
		lines = append(lines, a.renderRepository(list.Items[i], selected)...)
	}
	lines = append(lines, a.renderListFooter(list))
	return strings.Join(lines, "\n")
}

func (a *App) renderRepository(repo models.Repository, selected bool) []string {
	width := a.contentWidth()

	marker := "  "
	name := a.theme.Bold.Render(repo.Name)
	if selected {
		marker = a.theme.Selected.Render("▸ ")
	}

	parts := []string{marker + name, a.theme.Warning.Render("★ " + FormatCount(repo.StargazersCount))}
	if repo.ForksCount > 0 {
		parts = append(parts, a.theme.Muted.Render("⑂ "+FormatCount(repo.ForksCount)))
	}
	if repo.Language != "" {
		color := LanguageColor(repo.Language, a.theme.Palette.Muted)
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Render("● "+repo.Language))
	}
	if updated := FormatUpdated(repo.UpdatedAt, a.now()); updated != "" {
		parts = append(parts, a.theme.Muted.Render("updated "+updated))
	}

	description := repo.DescriptionOrDefault()
	style := a.theme.Text
	if strings.TrimSpace(repo.Description) == "" {
		style = a.theme.Muted
	}

	return []string{
		strings.Join(parts, "  "),
		"    " + style.Render(Truncate(description, width-4)),
	}
}

func (a *App) renderListFooter(list finder.RepositoryListView) string {
	switch {
	case list.Status == finder.StatusLoading:
		return a.spinner.View() + a.theme.Muted.Render(" Loading more...")
	case list.Status == finder.StatusError:
		return a.theme.Error.Render(fmt.Sprintf("Failed to load more repositories: %s. Press r to retry.",
			errors.FormatUserError(list.Err)))
	case !list.HasMore:
		return a.theme.Muted.Render("No more repositories")
	}
	return ""
}

func (a *App) renderStatusBar() string {
	if a.notice != "" {
		style := a.theme.Success
		if a.noticeIsError {
			style = a.theme.Error
		}
		return style.Render(a.notice)
	}
	if a.showHelp {
		return a.help.FullHelpView(a.keys.FullHelp())
	}
	return a.help.ShortHelpView(a.keys.ShortHelp())
}
