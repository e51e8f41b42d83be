// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ghfinder/ghfinder-cli/internal/models"
)

var (
	searchPage int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search user handles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := getContainer().Client().SearchHandles(cmd.Context(), args[0], searchPage)
		if err != nil {
			return err
		}

		if searchJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		printSuggestions(cmd.OutOrStdout(), result, searchPage)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page to fetch")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output in JSON format")
}

func printSuggestions(out io.Writer, result *models.SuggestionPage, page int) {
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No users found")
		return
	}
	for _, s := range result.Items {
		fmt.Fprintln(out, s.Login)
	}
	if result.HasMore {
		fmt.Fprintf(out, "\n%d matches; next page: --page %d\n", result.TotalCount, page+1)
	}
}
