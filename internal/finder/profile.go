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

// profileLoadedMsg carries the outcome of one FetchProfile call
type profileLoadedMsg struct {
	generation uint64
	handle     string
	profile    *models.Profile
	err        error
}

// ProfileCell holds the most recently resolved profile
type ProfileCell struct {
	ctx        context.Context
	client     Client
	generation uint64

	status  Status
	handle  string
	profile *models.Profile
	err     error
}

func NewProfileCell(ctx context.Context, client Client) *ProfileCell {
	return &ProfileCell{ctx: ctx, client: client}
}

// FetchProfile starts loading handle. Blank handles are ignored.
func (p *ProfileCell) FetchProfile(handle string) tea.Cmd {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil
	}

	p.generation++
	p.status = StatusLoading
	p.err = nil

	ctx, client, gen := p.ctx, p.client, p.generation
	return func() tea.Msg {
		profile, err := client.FetchProfile(ctx, handle)
		return profileLoadedMsg{generation: gen, handle: handle, profile: profile, err: err}
	}
}

// Clear resets the cell and orphans any in-flight fetch
func (p *ProfileCell) Clear() {
	p.generation++
	p.status = StatusIdle
	p.handle = ""
	p.profile = nil
	p.err = nil
}

// Update applies a fetch result. It reports whether msg belonged to this cell.
func (p *ProfileCell) Update(msg tea.Msg) bool {
	m, ok := msg.(profileLoadedMsg)
	if !ok {
		return false
	}
	if m.generation != p.generation {
		debug.LogToFilef("finder: dropping stale profile result for %q\n", m.handle)
		return true
	}

	if m.err != nil {
		p.status = StatusError
		p.err = m.err
		p.profile = nil
		return true
	}

	p.status = StatusLoaded
	p.profile = m.profile
	p.handle = m.handle
	return true
}

func (p *ProfileCell) Status() Status           { return p.status }
func (p *ProfileCell) Profile() *models.Profile { return p.profile }
func (p *ProfileCell) Handle() string           { return p.handle }
func (p *ProfileCell) Err() error               { return p.err }

// ErrKind classifies the stored failure
func (p *ProfileCell) ErrKind() errors.Kind {
	return errors.KindOf(p.err)
}
