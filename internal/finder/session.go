// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghfinder/ghfinder-cli/internal/debug"
	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/models"
)

// Options tunes the autocomplete behaviour of a Session
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
}

// ProfileView is the rendered state of the profile cell
type ProfileView struct {
	Status  Status
	Handle  string
	Profile *models.Profile
	Err     error
	ErrKind errors.Kind
}

// RepositoryListView is the rendered state of the repository pager
type RepositoryListView struct {
	Status  Status
	Items   []models.Repository
	Page    int
	HasMore bool
	Err     error
	ErrKind errors.Kind
	ErrPage int
	Empty   bool
}

// SuggestionPanelView is the rendered state of the autocomplete machine
type SuggestionPanelView struct {
	Query       string
	Visible     bool
	Items       []models.Suggestion
	HasMore     bool
	Searching   bool
	LoadingMore bool
	// NoResults is true when a settled search for the live query found nothing
	NoResults bool
}

// Session owns the three state machines of one browsing session and
// translates view intents into their operations.
type Session struct {
	profile      *ProfileCell
	repositories *RepositoryPager
	autocomplete *Autocomplete
	committed    string
}

func NewSession(ctx context.Context, client Client, opts Options) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{
		profile:      NewProfileCell(ctx, client),
		repositories: NewRepositoryPager(ctx, client),
		autocomplete: NewAutocomplete(ctx, client, opts.Debounce, opts.MinQueryLength),
	}
}

// QueryChanged handles an edit of the search field
func (s *Session) QueryChanged(text string) tea.Cmd {
	return s.autocomplete.OnQueryChange(text)
}

// Commit starts a new committed search for handle. Pending autocomplete work
// is cancelled before the profile and first repository page are requested.
func (s *Session) Commit(handle string) tea.Cmd {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil
	}
	debug.LogToFilef("finder: commit %q\n", handle)

	s.autocomplete.Commit(handle)
	s.profile.Clear()
	s.repositories.Reset()
	s.committed = handle

	return tea.Batch(
		s.profile.FetchProfile(handle),
		s.repositories.FetchPage(handle, 1),
	)
}

// SuggestionPicked commits the chosen suggestion
func (s *Session) SuggestionPicked(handle string) tea.Cmd {
	return s.Commit(handle)
}

// NearBottomOfRepositoryList requests the next repository page when allowed
func (s *Session) NearBottomOfRepositoryList() tea.Cmd {
	return s.repositories.NextPage()
}

// NearBottomOfSuggestionPanel requests the next suggestion page when allowed
func (s *Session) NearBottomOfSuggestionPanel() tea.Cmd {
	return s.autocomplete.LoadMore()
}

// ClickedOutsideSuggestionPanel hides the panel without clearing it
func (s *Session) ClickedOutsideSuggestionPanel() {
	s.autocomplete.Dismiss()
}

// FocusedSearchField re-shows dismissed suggestions
func (s *Session) FocusedSearchField() {
	s.autocomplete.Focus()
}

// RetryRepositories re-requests the repository page that failed
func (s *Session) RetryRepositories() tea.Cmd {
	return s.repositories.Retry()
}

// RetryProfile re-requests the committed profile after a failure
func (s *Session) RetryProfile() tea.Cmd {
	if s.profile.Status() != StatusError || s.committed == "" {
		return nil
	}
	return s.profile.FetchProfile(s.committed)
}

// Update routes async results and timer ticks to their owning machine.
// The returned bool reports whether msg was consumed.
func (s *Session) Update(msg tea.Msg) (tea.Cmd, bool) {
	if s.profile.Update(msg) {
		return nil, true
	}
	if s.repositories.Update(msg) {
		return nil, true
	}
	return s.autocomplete.Update(msg)
}

// Committed returns the handle of the current committed search
func (s *Session) Committed() string { return s.committed }

func (s *Session) Profile() *ProfileCell          { return s.profile }
func (s *Session) Repositories() *RepositoryPager { return s.repositories }
func (s *Session) Autocomplete() *Autocomplete    { return s.autocomplete }

func (s *Session) ProfileView() ProfileView {
	p := s.profile
	return ProfileView{
		Status:  p.Status(),
		Handle:  p.Handle(),
		Profile: p.Profile(),
		Err:     p.Err(),
		ErrKind: p.ErrKind(),
	}
}

func (s *Session) RepositoryListView() RepositoryListView {
	r := s.repositories
	cursor := r.Cursor()
	return RepositoryListView{
		Status:  r.Status(),
		Items:   r.Items(),
		Page:    cursor.Page,
		HasMore: cursor.HasMore,
		Err:     r.Err(),
		ErrKind: r.ErrKind(),
		ErrPage: r.ErrPage(),
		Empty:   r.IsEmpty(),
	}
}

func (s *Session) SuggestionPanelView() SuggestionPanelView {
	a := s.autocomplete
	items := a.Suggestions()
	return SuggestionPanelView{
		Query:       a.Query(),
		Visible:     a.Visible(),
		Items:       items,
		HasMore:     a.Cursor().HasMore,
		Searching:   a.Searching(),
		LoadingMore: a.LoadingMore(),
		NoResults:   a.Visible() && a.Settled() && len(items) == 0,
	}
}
