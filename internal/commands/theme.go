// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghfinder/ghfinder-cli/internal/prefs"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the finder's color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{prefs.ThemeDark, prefs.ThemeLight, "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getContainer().Preferences()

		var (
			p   prefs.Preferences
			err error
		)
		switch {
		case len(args) == 0:
			p, err = store.Load()
		case args[0] == "toggle":
			p, err = store.ToggleTheme()
		default:
			p, err = store.SetTheme(args[0])
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), p.Theme())
		return nil
	},
}
