// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastDebouncerID int64

func nextDebouncerID() int {
	return int(atomic.AddInt64(&lastDebouncerID, 1))
}

// debounceMsg is delivered when a scheduled quiet period elapses
type debounceMsg struct {
	id         int
	generation uint64
}

// Debouncer is a trailing edge timer. Every Schedule or Cancel bumps the
// generation, so only the tick from the most recent Schedule fires.
type Debouncer struct {
	id         int
	delay      time.Duration
	generation uint64
	pending    bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		id:    nextDebouncerID(),
		delay: delay,
	}
}

// Schedule starts a new quiet period, invalidating any pending one
func (d *Debouncer) Schedule() tea.Cmd {
	d.generation++
	d.pending = true
	id, gen := d.id, d.generation
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceMsg{id: id, generation: gen}
	})
}

// Cancel drops the pending quiet period, if any
func (d *Debouncer) Cancel() {
	d.generation++
	d.pending = false
}

// Pending reports whether a scheduled tick is still live
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Fire reports whether msg is the live tick of this debouncer and consumes it
func (d *Debouncer) Fire(msg tea.Msg) bool {
	m, ok := msg.(debounceMsg)
	if !ok || m.id != d.id || m.generation != d.generation || !d.pending {
		return false
	}
	d.pending = false
	return true
}

// Owns reports whether msg was produced by this debouncer, live or stale
func (d *Debouncer) Owns(msg tea.Msg) bool {
	m, ok := msg.(debounceMsg)
	return ok && m.id == d.id
}
