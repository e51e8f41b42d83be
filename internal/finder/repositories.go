// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghfinder/ghfinder-cli/internal/debug"
	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/models"
)

// repositoriesLoadedMsg carries the outcome of one FetchPage call
type repositoriesLoadedMsg struct {
	generation uint64
	handle     string
	page       int
	items      []models.Repository
	err        error
}

// RepositoryPager accumulates a handle's repositories page by page.
// Page 1 replaces, later pages append. At most one fetch is in flight.
type RepositoryPager struct {
	ctx        context.Context
	client     Client
	generation uint64

	handle string
	items  []models.Repository
	cursor Cursor
	status Status
	err    error
	// errPage is the page whose fetch failed, 0 when the last fetch succeeded
	errPage int
}

func NewRepositoryPager(ctx context.Context, client Client) *RepositoryPager {
	return &RepositoryPager{
		ctx:    ctx,
		client: client,
		cursor: NewCursor(),
	}
}

// FetchPage requests page of handle. It is ignored while another page is loading.
func (r *RepositoryPager) FetchPage(handle string, page int) tea.Cmd {
	handle = strings.TrimSpace(handle)
	if handle == "" || page < 1 {
		return nil
	}
	if r.status == StatusLoading {
		debug.LogToFilef("finder: ignoring page %d for %q, fetch in flight\n", page, handle)
		return nil
	}

	r.handle = handle
	r.cursor.Page = page
	r.status = StatusLoading
	r.err = nil
	r.errPage = 0

	ctx, client, gen := r.ctx, r.client, r.generation
	return func() tea.Msg {
		items, err := client.FetchRepositories(ctx, handle, page)
		return repositoriesLoadedMsg{generation: gen, handle: handle, page: page, items: items, err: err}
	}
}

// AdvancePage moves the cursor to the next page without fetching.
// It refuses while a fetch is in flight, after a failure, or once the list is exhausted.
func (r *RepositoryPager) AdvancePage() bool {
	if r.handle == "" || r.status != StatusLoaded || !r.cursor.HasMore {
		return false
	}
	r.cursor.Page++
	return true
}

// NextPage advances the cursor and fetches the new page
func (r *RepositoryPager) NextPage() tea.Cmd {
	if !r.AdvancePage() {
		return nil
	}
	return r.FetchPage(r.handle, r.cursor.Page)
}

// Retry re-issues the page whose fetch failed
func (r *RepositoryPager) Retry() tea.Cmd {
	if r.status != StatusError || r.errPage == 0 {
		return nil
	}
	return r.FetchPage(r.handle, r.errPage)
}

// Reset discards all pages and orphans any in-flight fetch
func (r *RepositoryPager) Reset() {
	r.generation++
	r.handle = ""
	r.items = nil
	r.cursor = NewCursor()
	r.status = StatusIdle
	r.err = nil
	r.errPage = 0
}

// Update applies a fetch result. It reports whether msg belonged to this pager.
func (r *RepositoryPager) Update(msg tea.Msg) bool {
	m, ok := msg.(repositoriesLoadedMsg)
	if !ok {
		return false
	}
	if m.generation != r.generation || m.handle != r.handle {
		debug.LogToFilef("finder: dropping stale page %d for %q\n", m.page, m.handle)
		return true
	}

	if m.err != nil {
		r.status = StatusError
		r.err = m.err
		r.errPage = m.page
		return true
	}

	full := len(m.items) == PageSize
	if m.page == 1 {
		r.items = append([]models.Repository(nil), m.items...)
		r.cursor = Cursor{Page: 1, HasMore: full}
	} else {
		r.items = append(r.items, m.items...)
		r.cursor.Settle(full)
	}
	r.status = StatusLoaded
	return true
}

func (r *RepositoryPager) Handle() string { return r.handle }
func (r *RepositoryPager) Status() Status { return r.status }
func (r *RepositoryPager) Cursor() Cursor { return r.cursor }
func (r *RepositoryPager) Err() error     { return r.err }
func (r *RepositoryPager) ErrPage() int   { return r.errPage }

// Items returns a copy of the accumulated repositories
func (r *RepositoryPager) Items() []models.Repository {
	return append([]models.Repository(nil), r.items...)
}

// Len returns the number of accumulated repositories
func (r *RepositoryPager) Len() int {
	return len(r.items)
}

// IsEmpty reports the terminal "no repositories" outcome
func (r *RepositoryPager) IsEmpty() bool {
	return r.status == StatusLoaded && len(r.items) == 0 && !r.cursor.HasMore
}

// ErrKind classifies the stored failure
func (r *RepositoryPager) ErrKind() errors.Kind {
	return errors.KindOf(r.err)
}
