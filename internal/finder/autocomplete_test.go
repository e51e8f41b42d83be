package finder

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ghfinder/ghfinder-cli/internal/errors"
)

const testDebounce = time.Millisecond

func newTestAutocomplete(client Client) *Autocomplete {
	return NewAutocomplete(context.Background(), client, testDebounce, DefaultMinQueryLength)
}

// settle fires cmd (a debounce tick), then runs and applies the resulting search
func settle(t *testing.T, a *Autocomplete, cmd tea.Cmd) {
	t.Helper()
	for _, tick := range run(cmd) {
		search, handled := a.Update(tick)
		require.True(t, handled)
		for _, msg := range run(search) {
			_, handled := a.Update(msg)
			require.True(t, handled)
		}
	}
}

func TestAutocomplete_DebounceCollapsesRapidEdits(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "abc", 1).Return(suggestionsPage("abc", 3, false), nil).Once()

	a := newTestAutocomplete(client)
	cmdA := a.OnQueryChange("a")
	cmdAB := a.OnQueryChange("ab")
	cmdABC := a.OnQueryChange("abc")

	assert.Nil(t, cmdA, "single character never schedules a search")
	require.NotNil(t, cmdAB)
	require.NotNil(t, cmdABC)

	// The superseded tick arrives first and must not search.
	for _, tick := range run(cmdAB) {
		search, handled := a.Update(tick)
		assert.True(t, handled)
		assert.Nil(t, search)
	}
	settle(t, a, cmdABC)

	assert.Equal(t, []string{"abc1", "abc2", "abc3"}, logins(a.Suggestions()))
	assert.True(t, a.Visible())
	assert.False(t, a.Searching())
	client.AssertNumberOfCalls(t, "SearchHandles", 1)
	client.AssertNotCalled(t, "SearchHandles", "ab", mock.Anything)
}

func TestAutocomplete_StaleResultNeverOverwritesNewer(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "ab", 1).Return(suggestionsPage("ab", 2, false), nil).Once()
	client.On("SearchHandles", "abc", 1).Return(suggestionsPage("abc", 1, false), nil).Once()

	a := newTestAutocomplete(client)

	// "ab" settles past the debounce window and its search goes out.
	var slowSearch tea.Cmd
	for _, tick := range run(a.OnQueryChange("ab")) {
		slowSearch, _ = a.Update(tick)
	}
	require.NotNil(t, slowSearch)
	assert.True(t, a.Searching())

	// The user keeps typing; "abc" is searched and answered first.
	settle(t, a, a.OnQueryChange("abc"))
	assert.Equal(t, []string{"abc1"}, logins(a.Suggestions()))

	// The late "ab" response is discarded on arrival.
	for _, msg := range run(slowSearch) {
		_, handled := a.Update(msg)
		assert.True(t, handled)
	}
	assert.Equal(t, []string{"abc1"}, logins(a.Suggestions()))
	assert.True(t, a.Visible())
	client.AssertExpectations(t)
}

func TestAutocomplete_ShortQueryNeverSearches(t *testing.T) {
	tests := []string{"", " ", "a", "  b  ", "\t"}

	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			client := new(mockClient)
			a := newTestAutocomplete(client)

			assert.Nil(t, a.OnQueryChange(query))
			assert.False(t, a.Visible())
			assert.Empty(t, a.Suggestions())
			assert.Equal(t, query, a.Query())
			client.AssertNotCalled(t, "SearchHandles", mock.Anything, mock.Anything)
		})
	}
}

func TestAutocomplete_ShortQueryClearsAndCancels(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "octo", 1).Return(suggestionsPage("octo", 2, false), nil).Once()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("octo"))
	require.Len(t, a.Suggestions(), 2)

	pending := a.OnQueryChange("octoc")
	require.True(t, a.SearchPending())

	assert.Nil(t, a.OnQueryChange(""))
	assert.False(t, a.SearchPending())
	assert.Empty(t, a.Suggestions())
	assert.False(t, a.Visible())

	// The cancelled tick is inert.
	for _, tick := range run(pending) {
		search, handled := a.Update(tick)
		assert.True(t, handled)
		assert.Nil(t, search)
	}
	client.AssertNumberOfCalls(t, "SearchHandles", 1)
}

func TestAutocomplete_LoadMoreAppends(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestionsPage("p1-", 10, true), nil).Once()
	client.On("SearchHandles", "tor", 2).Return(suggestionsPage("p2-", 10, true), nil).Once()
	client.On("SearchHandles", "tor", 3).Return(suggestionsPage("p3-", 4, false), nil).Once()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("tor"))
	require.Len(t, a.Suggestions(), 10)
	assert.True(t, a.Cursor().HasMore)

	more := a.LoadMore()
	require.NotNil(t, more)
	assert.True(t, a.LoadingMore())
	assert.Nil(t, a.LoadMore(), "only one load-more in flight")

	for _, msg := range run(more) {
		a.Update(msg)
	}
	assert.Len(t, a.Suggestions(), 20)
	assert.Equal(t, "p1-1", a.Suggestions()[0].Login)
	assert.Equal(t, "p2-1", a.Suggestions()[10].Login)
	assert.Equal(t, 2, a.Cursor().Page)

	for _, msg := range run(a.LoadMore()) {
		a.Update(msg)
	}
	assert.Len(t, a.Suggestions(), 24)
	assert.False(t, a.Cursor().HasMore)
	assert.Nil(t, a.LoadMore())
	client.AssertExpectations(t)
}

func TestAutocomplete_LoadMoreRequiresVisiblePanel(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestionsPage("t", 10, true), nil).Once()

	a := newTestAutocomplete(client)
	assert.Nil(t, a.LoadMore())

	settle(t, a, a.OnQueryChange("tor"))
	a.Dismiss()
	assert.Nil(t, a.LoadMore())

	// A new query with a pending search must not page the old results.
	a.Focus()
	a.OnQueryChange("torv")
	assert.Nil(t, a.LoadMore())
}

func TestAutocomplete_CommitCancelsPendingAndInFlight(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "octo", 1).Return(suggestionsPage("octo", 3, true), nil).Once()

	a := newTestAutocomplete(client)

	var inFlight tea.Cmd
	for _, tick := range run(a.OnQueryChange("octo")) {
		inFlight, _ = a.Update(tick)
	}
	require.NotNil(t, inFlight)

	pending := a.OnQueryChange("octoca")
	a.Commit("octocat")

	assert.Equal(t, "octocat", a.Query())
	assert.False(t, a.Visible())
	assert.False(t, a.Searching())
	assert.False(t, a.SearchPending())

	for _, msg := range run(inFlight) {
		a.Update(msg)
	}
	for _, tick := range run(pending) {
		search, _ := a.Update(tick)
		assert.Nil(t, search)
	}

	assert.False(t, a.Visible(), "late results must not reopen the panel")
	assert.Empty(t, a.Suggestions())
	client.AssertNumberOfCalls(t, "SearchHandles", 1)
}

func TestAutocomplete_DismissKeepsSuggestions(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "octo", 1).Return(suggestionsPage("octo", 3, false), nil).Once()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("octo"))

	a.Dismiss()
	assert.False(t, a.Visible())
	assert.Len(t, a.Suggestions(), 3)

	a.Focus()
	assert.True(t, a.Visible())
	assert.Len(t, a.Suggestions(), 3)
}

func TestAutocomplete_DismissDuringLoadMoreKeepsPage(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "tor", 1).Return(suggestionsPage("a", 10, true), nil).Once()
	client.On("SearchHandles", "tor", 2).Return(suggestionsPage("b", 10, true), nil).Twice()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("tor"))

	inFlight := a.LoadMore()
	require.NotNil(t, inFlight)
	a.Dismiss()
	assert.False(t, a.LoadingMore())
	assert.Equal(t, 1, a.Cursor().Page)

	for _, msg := range run(inFlight) {
		a.Update(msg)
	}
	require.Len(t, a.Suggestions(), 10, "result of a dismissed load-more is dropped")

	a.Focus()
	require.True(t, a.Visible())
	for _, msg := range run(a.LoadMore()) {
		a.Update(msg)
	}

	assert.Equal(t, 2, a.Cursor().Page)
	require.Len(t, a.Suggestions(), 20)
	assert.Equal(t, "b1", a.Suggestions()[10].Login)
	client.AssertExpectations(t)
}

func TestAutocomplete_DismissCancelsPendingSearch(t *testing.T) {
	client := new(mockClient)

	a := newTestAutocomplete(client)
	pending := a.OnQueryChange("octo")
	a.Dismiss()

	for _, tick := range run(pending) {
		search, handled := a.Update(tick)
		assert.True(t, handled)
		assert.Nil(t, search)
	}
	client.AssertNotCalled(t, "SearchHandles", mock.Anything, mock.Anything)
}

func TestAutocomplete_FailureHidesPanelSilently(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "octo", 1).Return(nil, &errors.RateLimitError{StatusCode: 403}).Once()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("octo"))

	assert.False(t, a.Visible())
	assert.False(t, a.Searching())
	assert.True(t, errors.IsRateLimited(a.Err()))

	// Typing continues to work after a failure.
	assert.NotNil(t, a.OnQueryChange("octoc"))
}

func TestAutocomplete_EmptyResultIsSettled(t *testing.T) {
	client := new(mockClient)
	client.On("SearchHandles", "zzzzqx", 1).Return(suggestionsPage("", 0, false), nil).Once()

	a := newTestAutocomplete(client)
	settle(t, a, a.OnQueryChange("zzzzqx"))

	assert.True(t, a.Visible())
	assert.True(t, a.Settled())
	assert.Empty(t, a.Suggestions())
}

func TestAutocomplete_IgnoresForeignMessages(t *testing.T) {
	a := newTestAutocomplete(new(mockClient))
	other := NewDebouncer(testDebounce)

	for _, tick := range run(other.Schedule()) {
		_, handled := a.Update(tick)
		assert.False(t, handled)
	}
	_, handled := a.Update(tea.KeyMsg{})
	assert.False(t, handled)
}
