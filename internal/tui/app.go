// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghfinder/ghfinder-cli/internal/debug"
	"github.com/ghfinder/ghfinder-cli/internal/finder"
	"github.com/ghfinder/ghfinder-cli/internal/prefs"
	"github.com/ghfinder/ghfinder-cli/internal/tui/keymap"
	"github.com/ghfinder/ghfinder-cli/internal/tui/styles"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusSuggestions
	focusRepositories
)

const (
	// panelRows is the number of suggestions shown at once
	panelRows = 8
	// nearBottom is how close the selection must get to the last loaded row
	// before the next page is requested
	nearBottom = 2
	// repoRowHeight is the number of lines one repository occupies
	repoRowHeight = 2
)

// themeSavedMsg reports the result of persisting a theme change
type themeSavedMsg struct {
	err error
}

// Options configures a new App
type Options struct {
	// Handle is committed as soon as the program starts
	Handle string
	// Dark selects the initial theme
	Dark bool
	// Prefs persists theme changes. Nil disables persistence.
	Prefs *prefs.Store
	// Now overrides the clock used for relative timestamps
	Now func() time.Time
}

// App is the bubbletea model for the profile finder
type App struct {
	session *finder.Session
	prefs   *prefs.Store
	theme   *styles.Theme
	keys    keymap.KeyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	now     func() time.Time

	focus            focusArea
	suggestionIndex  int
	suggestionOffset int
	repoIndex        int
	repoOffset       int
	width            int
	height           int
	showHelp         bool
	initialHandle    string
	notice           string
	noticeIsError    bool
}

func NewApp(session *finder.Session, opts Options) *App {
	theme := styles.NewTheme(opts.Dark)

	ti := textinput.New()
	ti.Placeholder = "Search GitHub users..."
	ti.Prompt = "> "
	ti.CharLimit = 39
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{
		session:       session,
		prefs:         opts.Prefs,
		keys:          keymap.DefaultKeyMap,
		help:          help.New(),
		input:         ti,
		spinner:       s,
		now:           now,
		initialHandle: opts.Handle,
	}
	a.applyTheme(theme)
	return a
}

func (a *App) applyTheme(theme *styles.Theme) {
	a.theme = theme
	a.input.PromptStyle = theme.Prompt
	a.input.TextStyle = theme.Text
	a.input.PlaceholderStyle = theme.Muted
	a.spinner.Style = theme.Spinner
	a.help.Styles.ShortKey = theme.Muted
	a.help.Styles.ShortDesc = theme.Help
	a.help.Styles.FullKey = theme.Muted
	a.help.Styles.FullDesc = theme.Help
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, a.spinner.Tick}
	if a.initialHandle != "" {
		cmds = append(cmds, a.commit(a.initialHandle))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(msg.Width-len(a.input.Prompt)-4, 10)
		a.help.Width = msg.Width
		return a, tea.Batch(a.clampSelections(), a.checkSentinels())

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case themeSavedMsg:
		if msg.err != nil {
			debug.LogToFilef("tui: failed to save theme: %v\n", msg.err)
			a.setNotice("Could not save theme: "+msg.err.Error(), true)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)
	}

	if cmd, handled := a.session.Update(msg); handled {
		return a, tea.Batch(cmd, a.clampSelections(), a.checkSentinels())
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.notice = ""

	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.ToggleTheme):
		return a, a.toggleTheme()
	case key.Matches(msg, a.keys.NextFocus):
		return a, a.cycleFocus()
	}

	switch a.focus {
	case focusSuggestions:
		return a.handleSuggestionKey(msg)
	case focusRepositories:
		return a.handleRepositoryKey(msg)
	default:
		return a.handleInputKey(msg)
	}
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panel := a.session.SuggestionPanelView()

	switch {
	case key.Matches(msg, a.keys.Enter):
		return a, a.commit(a.input.Value())

	case key.Matches(msg, a.keys.Dismiss):
		if panel.Visible {
			a.session.ClickedOutsideSuggestionPanel()
			return a, nil
		}
		if a.session.Committed() != "" {
			return a, a.setFocus(focusRepositories)
		}
		return a, nil

	case msg.Type == tea.KeyDown:
		if panel.Visible && len(panel.Items) > 0 {
			a.suggestionIndex = 0
			a.suggestionOffset = 0
			return a, a.setFocus(focusSuggestions)
		}
		if a.session.Repositories().Len() > 0 {
			return a, a.setFocus(focusRepositories)
		}
		return a, nil

	case a.input.Value() == "" && key.Matches(msg, a.keys.QuickPick):
		if handle, ok := keymap.QuickPickHandle(msg.String()); ok {
			return a, a.commit(handle)
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}

	a.suggestionIndex = 0
	a.suggestionOffset = 0
	return a, tea.Batch(cmd, a.session.QueryChanged(a.input.Value()))
}

func (a *App) handleSuggestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panel := a.session.SuggestionPanelView()
	if !panel.Visible || len(panel.Items) == 0 {
		focusCmd := a.setFocus(focusInput)
		model, cmd := a.handleInputKey(msg)
		return model, tea.Batch(focusCmd, cmd)
	}

	switch msg.Type {
	case tea.KeyUp:
		if a.suggestionIndex == 0 {
			return a, a.setFocus(focusInput)
		}
		a.suggestionIndex--
		a.scrollSuggestions()
		return a, nil

	case tea.KeyDown:
		if a.suggestionIndex < len(panel.Items)-1 {
			a.suggestionIndex++
		}
		a.scrollSuggestions()
		return a, a.checkSentinels()

	case tea.KeyEnter:
		return a, a.pick(panel.Items[a.suggestionIndex].Login)

	case tea.KeyEsc:
		a.session.ClickedOutsideSuggestionPanel()
		return a, a.setFocus(focusInput)
	}

	// Anything else is typing; hand it back to the search field.
	focusCmd := a.setFocus(focusInput)
	model, cmd := a.handleInputKey(msg)
	return model, tea.Batch(focusCmd, cmd)
}

func (a *App) handleRepositoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := a.session.Repositories().Len()
	rows := a.repoRows()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Search), key.Matches(msg, a.keys.Dismiss):
		return a, a.refocusInput()
	case key.Matches(msg, a.keys.Retry):
		return a, a.retry()
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case key.Matches(msg, a.keys.Up):
		a.repoIndex--
	case key.Matches(msg, a.keys.Down):
		a.repoIndex++
	case key.Matches(msg, a.keys.PageUp):
		a.repoIndex -= max(rows, 1)
	case key.Matches(msg, a.keys.PageDown):
		a.repoIndex += max(rows, 1)
	case key.Matches(msg, a.keys.Home):
		a.repoIndex = 0
	case key.Matches(msg, a.keys.End):
		a.repoIndex = count - 1
	default:
		return a, nil
	}

	return a, tea.Batch(a.clampSelections(), a.checkSentinels())
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.focus == focusSuggestions {
			a.suggestionIndex--
		} else {
			a.repoIndex--
		}
		return a, a.clampSelections()
	case tea.MouseButtonWheelDown:
		if a.focus == focusSuggestions {
			a.suggestionIndex++
		} else {
			a.repoIndex++
		}
		return a, tea.Batch(a.clampSelections(), a.checkSentinels())
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	layout := a.layout()
	switch {
	case msg.Y == layout.inputRow:
		return a, a.refocusInput()
	case layout.panelVisible && msg.Y > layout.panelTop && msg.Y < layout.panelBottom:
		i := a.suggestionOffset + msg.Y - layout.panelTop - 1
		if items := a.session.SuggestionPanelView().Items; i >= 0 && i < len(items) {
			return a, a.pick(items[i].Login)
		}
		return a, nil
	}

	a.session.ClickedOutsideSuggestionPanel()
	if msg.Y >= layout.listTop && a.session.Repositories().Len() > 0 {
		a.repoIndex = a.repoOffset + (msg.Y-layout.listTop)/repoRowHeight
		clampCmd := a.clampSelections()
		return a, tea.Batch(clampCmd, a.setFocus(focusRepositories))
	}
	return a, nil
}

// commit starts a committed search and moves focus to the results
func (a *App) commit(handle string) tea.Cmd {
	cmd := a.session.Commit(handle)
	if cmd == nil {
		return nil
	}
	a.input.SetValue(a.session.Committed())
	a.input.CursorEnd()
	a.resetSelections()
	return tea.Batch(cmd, a.setFocus(focusRepositories))
}

func (a *App) pick(login string) tea.Cmd {
	cmd := a.session.SuggestionPicked(login)
	if cmd == nil {
		return nil
	}
	a.input.SetValue(login)
	a.input.CursorEnd()
	a.resetSelections()
	return tea.Batch(cmd, a.setFocus(focusRepositories))
}

func (a *App) retry() tea.Cmd {
	return tea.Batch(a.session.RetryProfile(), a.session.RetryRepositories())
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	if f == focusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

// refocusInput returns to the search field and re-shows dismissed suggestions
func (a *App) refocusInput() tea.Cmd {
	cmd := a.setFocus(focusInput)
	a.session.FocusedSearchField()
	return cmd
}

func (a *App) cycleFocus() tea.Cmd {
	switch a.focus {
	case focusInput:
		if a.session.Repositories().Len() > 0 {
			return a.setFocus(focusRepositories)
		}
		return nil
	default:
		return a.refocusInput()
	}
}

func (a *App) toggleTheme() tea.Cmd {
	a.applyTheme(a.theme.Toggle())
	debug.LogToFilef("tui: theme switched to %s\n", a.theme.Name())
	a.setNotice("Switched to "+a.theme.Name()+" theme", false)

	store, dark := a.prefs, a.theme.Dark
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{err: store.Save(prefs.Preferences{Dark: dark})}
	}
}

func (a *App) setNotice(text string, isError bool) {
	a.notice = text
	a.noticeIsError = isError
}

func (a *App) resetSelections() {
	a.suggestionIndex = 0
	a.suggestionOffset = 0
	a.repoIndex = 0
	a.repoOffset = 0
}

// clampSelections keeps both selections in range. When the suggestion panel
// disappears under focus, focus falls back to the input and its cmd is returned.
func (a *App) clampSelections() tea.Cmd {
	count := a.session.Repositories().Len()
	a.repoIndex = clamp(a.repoIndex, 0, count-1)
	rows := a.repoRows()
	if rows > 0 {
		if a.repoIndex < a.repoOffset {
			a.repoOffset = a.repoIndex
		}
		if a.repoIndex >= a.repoOffset+rows {
			a.repoOffset = a.repoIndex - rows + 1
		}
	}
	a.repoOffset = clamp(a.repoOffset, 0, max(count-1, 0))

	items := len(a.session.SuggestionPanelView().Items)
	a.suggestionIndex = clamp(a.suggestionIndex, 0, items-1)
	a.scrollSuggestions()

	if a.focus == focusSuggestions && !a.session.SuggestionPanelView().Visible {
		return a.setFocus(focusInput)
	}
	return nil
}

func (a *App) scrollSuggestions() {
	if a.suggestionIndex < a.suggestionOffset {
		a.suggestionOffset = a.suggestionIndex
	}
	if a.suggestionIndex >= a.suggestionOffset+panelRows {
		a.suggestionOffset = a.suggestionIndex - panelRows + 1
	}
}

// checkSentinels requests the next page of any list whose last loaded row
// is on screen or within reach of the selection.
func (a *App) checkSentinels() tea.Cmd {
	var cmds []tea.Cmd

	list := a.session.RepositoryListView()
	if list.Status == finder.StatusLoaded && list.HasMore {
		rows := a.repoRows()
		onScreen := rows > 0 && len(list.Items)-a.repoOffset <= rows
		reached := a.focus == focusRepositories && a.repoIndex >= len(list.Items)-1-nearBottom
		if onScreen || reached {
			cmds = append(cmds, a.session.NearBottomOfRepositoryList())
		}
	}

	panel := a.session.SuggestionPanelView()
	if panel.Visible && panel.HasMore && !panel.LoadingMore {
		reached := a.focus == focusSuggestions && a.suggestionIndex >= len(panel.Items)-1-nearBottom
		if len(panel.Items) < panelRows || reached {
			cmds = append(cmds, a.session.NearBottomOfSuggestionPanel())
		}
	}

	return tea.Batch(cmds...)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
