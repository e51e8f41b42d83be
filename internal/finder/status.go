// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"context"

	"github.com/ghfinder/ghfinder-cli/internal/api"
	"github.com/ghfinder/ghfinder-cli/internal/models"
)

// PageSize is the number of items requested per page
const PageSize = api.PageSize

// Client is the subset of the API client the state machines depend on
type Client interface {
	FetchProfile(ctx context.Context, handle string) (*models.Profile, error)
	FetchRepositories(ctx context.Context, handle string, page int) ([]models.Repository, error)
	SearchHandles(ctx context.Context, query string, page int) (*models.SuggestionPage, error)
}

// Status is the load state of one state machine.
// Loading and Error are mutually exclusive.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Cursor tracks pagination progress for one list
type Cursor struct {
	Page    int
	HasMore bool
}

// NewCursor returns a cursor positioned before the first page
func NewCursor() Cursor {
	return Cursor{Page: 1, HasMore: true}
}

// Settle records the outcome of a page fetch. Once HasMore is false it
// stays false until the cursor is replaced.
func (c *Cursor) Settle(hasMore bool) {
	c.HasMore = c.HasMore && hasMore
}
