// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/finder"
	"github.com/ghfinder/ghfinder-cli/internal/models"
	"github.com/ghfinder/ghfinder-cli/internal/prefs"
)

// MockClient implements finder.Client for view tests
type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchProfile(ctx context.Context, handle string) (*models.Profile, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockClient) FetchRepositories(ctx context.Context, handle string, page int) ([]models.Repository, error) {
	args := m.Called(handle, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *MockClient) SearchHandles(ctx context.Context, query string, page int) (*models.SuggestionPage, error) {
	args := m.Called(query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestionPage), args.Error(1)
}

func newTestApp(client finder.Client, opts Options) *App {
	session := finder.NewSession(context.Background(), client, finder.Options{Debounce: time.Millisecond})
	app := NewApp(session, opts)
	app.input.Cursor.SetMode(cursor.CursorStatic)
	return app
}

// drive executes cmd and feeds every resulting message back into app
func drive(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, tea.QuitMsg, spinner.TickMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			drive(app, c)
		}
		return
	}
	_, next := app.Update(msg)
	drive(app, next)
}

func press(app *App, msg tea.KeyMsg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func repos(n, offset int) []models.Repository {
	out := make([]models.Repository, n)
	for i := range out {
		id := offset + i + 1
		out[i] = models.Repository{ID: int64(id), Name: fmt.Sprintf("repo-%d", id), StargazersCount: id * 100}
	}
	return out
}

func suggestions(prefix string, n int, hasMore bool) *models.SuggestionPage {
	items := make([]models.Suggestion, n)
	for i := range items {
		items[i] = models.Suggestion{ID: int64(i + 1), Login: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return &models.SuggestionPage{Items: items, TotalCount: n, HasMore: hasMore}
}

func TestApp_TypingDebouncesSearch(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "oct", 1).Return(suggestions("oct", 3, false), nil).Once()

	app := newTestApp(client, Options{})
	var cmds []tea.Cmd
	for _, r := range "oct" {
		cmds = append(cmds, press(app, runes(string(r))))
	}
	for _, cmd := range cmds {
		drive(app, cmd)
	}

	client.AssertNumberOfCalls(t, "SearchHandles", 1)
	client.AssertNotCalled(t, "SearchHandles", "oc", mock.Anything)

	view := app.View()
	assert.Contains(t, view, "oct1")
	assert.Contains(t, view, "oct3")
}

func TestApp_EnterCommitsSearch(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "octocat").Return(&models.Profile{
		Login:       "octocat",
		Name:        "The Octocat",
		Blog:        "github.blog",
		Followers:   12_345,
		PublicRepos: 3,
		CreatedAt:   time.Date(2011, 1, 25, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	client.On("FetchRepositories", "octocat", 1).Return(repos(3, 0), nil).Once()

	app := newTestApp(client, Options{})
	app.input.SetValue("octocat")
	drive(app, press(app, tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Equal(t, "octocat", app.session.Committed())
	assert.Equal(t, focusRepositories, app.focus)

	view := app.View()
	assert.Contains(t, view, "The Octocat")
	assert.Contains(t, view, "@octocat")
	assert.Contains(t, view, "https://github.blog")
	assert.Contains(t, view, "12.3K")
	assert.Contains(t, view, "Joined January 2011")
	assert.Contains(t, view, "repo-1")
	assert.Contains(t, view, "No description provided")
	assert.Contains(t, view, "No more repositories")
	client.AssertExpectations(t)
}

func TestApp_BlankEnterIsIgnored(t *testing.T) {
	client := new(MockClient)
	app := newTestApp(client, Options{})
	app.input.SetValue("   ")

	assert.Nil(t, press(app, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Empty(t, app.session.Committed())
	client.AssertNotCalled(t, "FetchProfile", mock.Anything)
}

func TestApp_QuickPick(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "octocat").Return(&models.Profile{Login: "octocat"}, nil).Once()
	client.On("FetchRepositories", "octocat", 1).Return(repos(1, 0), nil).Once()

	app := newTestApp(client, Options{})
	assert.Contains(t, app.View(), "torvalds")

	drive(app, press(app, runes("2")))

	assert.Equal(t, "octocat", app.session.Committed())
	assert.Equal(t, "octocat", app.input.Value())
	client.AssertExpectations(t)
}

func TestApp_InitialHandleCommitsOnStart(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "tj").Return(&models.Profile{Login: "tj"}, nil).Once()
	client.On("FetchRepositories", "tj", 1).Return(repos(2, 0), nil).Once()

	app := newTestApp(client, Options{Handle: "tj"})
	cmd := app.commit(app.initialHandle)
	drive(app, cmd)

	assert.Equal(t, "tj", app.session.Committed())
	client.AssertExpectations(t)
}

func TestApp_InfiniteScrollFillsTallScreen(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "torvalds").Return(&models.Profile{Login: "torvalds"}, nil).Once()
	client.On("FetchRepositories", "torvalds", 1).Return(repos(finder.PageSize, 0), nil).Once()
	client.On("FetchRepositories", "torvalds", 2).Return(repos(finder.PageSize, 10), nil).Once()
	client.On("FetchRepositories", "torvalds", 3).Return(repos(4, 20), nil).Once()

	app := newTestApp(client, Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 80})
	drive(app, app.commit("torvalds"))

	assert.Equal(t, 24, app.session.Repositories().Len())
	assert.False(t, app.session.Repositories().Cursor().HasMore)
	client.AssertExpectations(t)
}

func TestApp_ScrollingNearBottomLoadsNextPage(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "gaearon").Return(&models.Profile{Login: "gaearon"}, nil).Once()
	client.On("FetchRepositories", "gaearon", 1).Return(repos(finder.PageSize, 0), nil).Once()
	client.On("FetchRepositories", "gaearon", 2).Return(repos(5, 10), nil).Once()

	app := newTestApp(client, Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	drive(app, app.commit("gaearon"))

	require.Equal(t, finder.PageSize, app.session.Repositories().Len(), "short screen shows one page")
	client.AssertNotCalled(t, "FetchRepositories", "gaearon", 2)

	drive(app, press(app, runes("G")))

	assert.Equal(t, 15, app.session.Repositories().Len())
	assert.Equal(t, 9, app.repoIndex)
	client.AssertExpectations(t)
}

func TestApp_RetryFailedPage(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "addyosmani").Return(&models.Profile{Login: "addyosmani"}, nil).Once()
	client.On("FetchRepositories", "addyosmani", 1).Return(repos(finder.PageSize, 0), nil).Once()
	client.On("FetchRepositories", "addyosmani", 2).Return(nil, &errors.NetworkError{Err: assert.AnError}).Once()
	client.On("FetchRepositories", "addyosmani", 2).Return(repos(2, 10), nil).Once()

	app := newTestApp(client, Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	drive(app, app.commit("addyosmani"))
	drive(app, press(app, runes("G")))

	assert.Contains(t, app.View(), "Failed to load more repositories")
	assert.Equal(t, finder.PageSize, app.session.Repositories().Len())

	drive(app, press(app, runes("r")))

	assert.Equal(t, 12, app.session.Repositories().Len())
	assert.Contains(t, app.View(), "No more repositories")
	client.AssertExpectations(t)
}

func TestApp_ProfileNotFound(t *testing.T) {
	client := new(MockClient)
	notFound := &errors.APIError{StatusCode: 404, Kind: errors.KindNotFound}
	client.On("FetchProfile", "nobody").Return(nil, notFound).Once()
	client.On("FetchRepositories", "nobody", 1).Return(nil, notFound).Once()

	app := newTestApp(client, Options{})
	drive(app, app.commit("nobody"))

	view := app.View()
	assert.Contains(t, view, "User Not Found")
	assert.Contains(t, view, "doesn't exist")
}

func TestApp_EmptyRepositories(t *testing.T) {
	client := new(MockClient)
	client.On("FetchProfile", "newbie").Return(&models.Profile{Login: "newbie"}, nil).Once()
	client.On("FetchRepositories", "newbie", 1).Return([]models.Repository{}, nil).Once()

	app := newTestApp(client, Options{})
	drive(app, app.commit("newbie"))

	assert.Contains(t, app.View(), "No Public Repositories")
}

func TestApp_SuggestionNavigationAndPick(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestions("tor", 3, false), nil).Once()
	client.On("FetchProfile", "tor2").Return(&models.Profile{Login: "tor2"}, nil).Once()
	client.On("FetchRepositories", "tor2", 1).Return(repos(1, 0), nil).Once()

	app := newTestApp(client, Options{})
	app.input.SetValue("to")
	drive(app, press(app, runes("r")))
	require.True(t, app.session.SuggestionPanelView().Visible)

	press(app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, focusSuggestions, app.focus)
	press(app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, app.suggestionIndex)

	drive(app, press(app, tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Equal(t, "tor2", app.session.Committed())
	assert.False(t, app.session.SuggestionPanelView().Visible)
	client.AssertExpectations(t)
}

func TestApp_EscDismissesAndRefocusRestores(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestions("tor", 3, false), nil).Once()

	app := newTestApp(client, Options{})
	app.input.SetValue("to")
	drive(app, press(app, runes("r")))
	require.True(t, app.session.SuggestionPanelView().Visible)

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.session.SuggestionPanelView().Visible)

	app.refocusInput()
	assert.True(t, app.session.SuggestionPanelView().Visible)
}

func TestApp_HiddenPanelReturnsFocusToInput(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestions("tor", 3, false), nil).Once()

	app := newTestApp(client, Options{})
	app.input.SetValue("to")
	drive(app, press(app, runes("r")))
	require.True(t, app.session.SuggestionPanelView().Visible)

	press(app, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, focusSuggestions, app.focus)
	require.False(t, app.input.Focused())

	_ = app.input.Cursor.SetMode(cursor.CursorBlink)
	app.session.ClickedOutsideSuggestionPanel()
	cmd := app.clampSelections()

	assert.Equal(t, focusInput, app.focus)
	assert.True(t, app.input.Focused())
	assert.NotNil(t, cmd, "refocusing the input should start the cursor blink")
}

func TestApp_ClickOutsideDismisses(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestions("tor", 3, false), nil).Once()

	app := newTestApp(client, Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.input.SetValue("to")
	drive(app, press(app, runes("r")))
	require.True(t, app.session.SuggestionPanelView().Visible)

	app.Update(tea.MouseMsg{X: 1, Y: 30, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, app.session.SuggestionPanelView().Visible)

	layout := app.layout()
	app.Update(tea.MouseMsg{X: 1, Y: layout.inputRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, app.session.SuggestionPanelView().Visible)
}

func TestApp_SuggestionPanelLoadsMore(t *testing.T) {
	client := new(MockClient)
	client.On("SearchHandles", "tj", 1).Return(suggestions("a", finder.PageSize, true), nil).Once()
	client.On("SearchHandles", "tj", 2).Return(suggestions("b", 2, false), nil).Once()

	app := newTestApp(client, Options{})
	app.input.SetValue("t")
	drive(app, press(app, runes("j")))
	require.Len(t, app.session.SuggestionPanelView().Items, finder.PageSize)

	press(app, tea.KeyMsg{Type: tea.KeyDown})
	var last tea.Cmd
	for i := 0; i < finder.PageSize; i++ {
		cmd := press(app, tea.KeyMsg{Type: tea.KeyDown})
		if cmd != nil {
			last = cmd
		}
	}
	drive(app, last)

	assert.Len(t, app.session.SuggestionPanelView().Items, finder.PageSize+2)
	client.AssertExpectations(t)
}

func TestApp_ToggleThemePersists(t *testing.T) {
	store := prefs.NewStore(t.TempDir())
	app := newTestApp(new(MockClient), Options{Prefs: store})
	require.False(t, app.theme.Dark)

	drive(app, press(app, tea.KeyMsg{Type: tea.KeyCtrlT}))

	assert.True(t, app.theme.Dark)
	assert.Contains(t, app.View(), "dark theme")

	saved, err := store.Load()
	require.NoError(t, err)
	assert.True(t, saved.Dark)
}

func TestApp_QuitFromRepositoryList(t *testing.T) {
	app := newTestApp(new(MockClient), Options{})
	app.focus = focusRepositories

	cmd := press(app, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
