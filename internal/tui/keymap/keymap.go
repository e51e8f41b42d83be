// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// QuickPicks are the handles offered on keys 1-5 while the search field is empty
var QuickPicks = []string{"torvalds", "octocat", "gaearon", "addyosmani", "tj"}

// KeyMap holds the finder's key bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Enter       key.Binding
	Dismiss     key.Binding
	Search      key.Binding
	NextFocus   key.Binding
	Retry       key.Binding
	ToggleTheme key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	QuickPick   key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close suggestions"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	QuickPick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "quick pick"),
	),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.NextFocus, k.Retry, k.ToggleTheme, k.Help, k.ForceQuit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Enter, k.Dismiss},
		{k.Search, k.NextFocus, k.Retry, k.QuickPick},
		{k.ToggleTheme, k.Help, k.Quit, k.ForceQuit},
	}
}

// QuickPickHandle maps a digit key to its quick pick handle
func QuickPickHandle(keyString string) (string, bool) {
	if len(keyString) != 1 || keyString[0] < '1' || keyString[0] > '9' {
		return "", false
	}
	i := int(keyString[0] - '1')
	if i >= len(QuickPicks) {
		return "", false
	}
	return QuickPicks[i], true
}
