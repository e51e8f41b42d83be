// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghfinder/ghfinder-cli/internal/debug"
	"github.com/ghfinder/ghfinder-cli/internal/models"
)

const (
	// DefaultDebounce is the quiet period before a search is issued
	DefaultDebounce = 400 * time.Millisecond

	// DefaultMinQueryLength is the shortest trimmed query that is searched
	DefaultMinQueryLength = 2
)

// suggestionsLoadedMsg carries the outcome of a search or load-more request
type suggestionsLoadedMsg struct {
	generation uint64
	query      string
	page       int
	more       bool
	result     *models.SuggestionPage
	err        error
}

// Autocomplete owns the type-ahead suggestion list for the live query.
// Every query edit, commit or dismissal bumps the generation; results
// answering an older generation are dropped on arrival.
type Autocomplete struct {
	ctx        context.Context
	client     Client
	debouncer  *Debouncer
	minLength  int
	generation uint64

	query       string
	suggestions []models.Suggestion
	cursor      Cursor
	visible     bool
	searching   bool
	loadingMore bool
	settled     bool
	err         error
	// resultQuery is the query the current suggestions answer
	resultQuery string
}

func NewAutocomplete(ctx context.Context, client Client, delay time.Duration, minLength int) *Autocomplete {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if minLength < 1 {
		minLength = DefaultMinQueryLength
	}
	return &Autocomplete{
		ctx:       ctx,
		client:    client,
		debouncer: NewDebouncer(delay),
		minLength: minLength,
	}
}

// OnQueryChange records text immediately and schedules a debounced search.
// Queries shorter than the minimum clear the panel without searching.
func (a *Autocomplete) OnQueryChange(text string) tea.Cmd {
	a.query = text
	a.generation++

	if utf8.RuneCountInString(strings.TrimSpace(text)) < a.minLength {
		a.debouncer.Cancel()
		a.clearSuggestions()
		return nil
	}

	return a.debouncer.Schedule()
}

// search issues page 1 for the live query
func (a *Autocomplete) search() tea.Cmd {
	a.searching = true
	a.loadingMore = false
	a.cursor = Cursor{Page: 1}
	return a.request(1, false)
}

// LoadMore fetches the next suggestion page and appends it
func (a *Autocomplete) LoadMore() tea.Cmd {
	if !a.visible || !a.cursor.HasMore || a.searching || a.loadingMore || a.resultQuery != a.query {
		return nil
	}
	a.loadingMore = true
	a.cursor.Page++
	return a.request(a.cursor.Page, true)
}

func (a *Autocomplete) request(page int, more bool) tea.Cmd {
	ctx, client, gen := a.ctx, a.client, a.generation
	query := strings.TrimSpace(a.query)
	live := a.query
	return func() tea.Msg {
		result, err := client.SearchHandles(ctx, query, page)
		return suggestionsLoadedMsg{generation: gen, query: live, page: page, more: more, result: result, err: err}
	}
}

// Commit cancels pending work and clears the panel. The query becomes handle.
func (a *Autocomplete) Commit(handle string) {
	a.debouncer.Cancel()
	a.generation++
	a.query = handle
	a.clearSuggestions()
}

// Dismiss hides the panel but keeps the accumulated suggestions. A page
// still in flight is dropped, so the cursor steps back to the last page shown.
func (a *Autocomplete) Dismiss() {
	a.debouncer.Cancel()
	a.generation++
	a.visible = false
	a.searching = false
	if a.loadingMore {
		a.loadingMore = false
		a.cursor.Page--
	}
}

// Focus re-shows previously dismissed suggestions for the unchanged query
func (a *Autocomplete) Focus() {
	if len(a.suggestions) > 0 && !a.searching && a.resultQuery == a.query {
		a.visible = true
	}
}

func (a *Autocomplete) clearSuggestions() {
	a.suggestions = nil
	a.cursor = Cursor{Page: 1}
	a.visible = false
	a.searching = false
	a.loadingMore = false
	a.settled = false
	a.err = nil
	a.resultQuery = ""
}

// Update handles debounce ticks and search results. The returned bool
// reports whether msg belonged to this machine.
func (a *Autocomplete) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch m := msg.(type) {
	case debounceMsg:
		if !a.debouncer.Owns(m) {
			return nil, false
		}
		if !a.debouncer.Fire(m) {
			return nil, true
		}
		return a.search(), true

	case suggestionsLoadedMsg:
		a.apply(m)
		return nil, true
	}
	return nil, false
}

func (a *Autocomplete) apply(m suggestionsLoadedMsg) {
	if m.generation != a.generation || m.query != a.query {
		debug.LogToFilef("finder: dropping stale suggestions for %q page %d\n", m.query, m.page)
		return
	}

	if m.err != nil {
		debug.LogToFilef("finder: suggestion error for %q: %v\n", m.query, m.err)
		a.err = m.err
		a.visible = false
		a.searching = false
		if m.more {
			a.loadingMore = false
			a.cursor.Page = m.page - 1
		}
		return
	}

	a.err = nil
	if m.more {
		a.suggestions = append(a.suggestions, m.result.Items...)
		a.cursor.Page = m.page
		a.cursor.Settle(m.result.HasMore)
		a.loadingMore = false
		return
	}

	a.suggestions = append([]models.Suggestion(nil), m.result.Items...)
	a.cursor = Cursor{Page: 1, HasMore: m.result.HasMore}
	a.visible = true
	a.searching = false
	a.settled = true
	a.resultQuery = m.query
}

func (a *Autocomplete) Query() string       { return a.query }
func (a *Autocomplete) Visible() bool       { return a.visible }
func (a *Autocomplete) Searching() bool     { return a.searching }
func (a *Autocomplete) LoadingMore() bool   { return a.loadingMore }
func (a *Autocomplete) Cursor() Cursor      { return a.cursor }
func (a *Autocomplete) Err() error          { return a.err }
func (a *Autocomplete) SearchPending() bool { return a.debouncer.Pending() }
func (a *Autocomplete) Settled() bool       { return a.settled }
func (a *Autocomplete) MinQueryLength() int { return a.minLength }

// Suggestions returns a copy of the accumulated suggestions
func (a *Autocomplete) Suggestions() []models.Suggestion {
	return append([]models.Suggestion(nil), a.suggestions...)
}
