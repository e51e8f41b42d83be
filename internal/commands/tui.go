// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ghfinder/ghfinder-cli/internal/debug"
	"github.com/ghfinder/ghfinder-cli/internal/tui"
)

var tuiHandle string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive finder",
	Long: `Launch the interactive profile finder.

The finder provides:
- Handle suggestions while you type, after a short pause
- Profile details for the committed handle
- A repository list that loads more pages as you scroll
- Quick picks on keys 1-5 while the search field is empty
- A dark/light theme toggle on ctrl+t that is remembered between runs

Set GHFINDER_DEBUG_LOG=1 to trace events to a log file.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiHandle, "handle", "", "handle to load on start")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the interactive finder needs a terminal; use 'ghfinder profile', 'repos' or 'search' instead")
	}

	c := getContainer()
	defer c.Close()

	preferences, err := c.Preferences().Load()
	if err != nil {
		debug.LogToFilef("commands: ignoring unreadable preferences: %v\n", err)
	}

	session := c.NewSession(cmd.Context())
	app := tui.NewApp(session, tui.Options{
		Handle: tuiHandle,
		Dark:   preferences.Dark,
		Prefs:  c.Preferences(),
	})

	debug.LogToFilef("commands: starting finder (handle=%q)\n", tuiHandle)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("finder exited: %w", err)
	}
	return nil
}
