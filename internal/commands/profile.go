// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ghfinder/ghfinder-cli/internal/models"
	"github.com/ghfinder/ghfinder-cli/internal/tui"
)

var profileJSON bool

var profileCmd = &cobra.Command{
	Use:     "profile <handle>",
	Aliases: []string{"p"},
	Short:   "Show a user's public profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := getContainer().Client().FetchProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if profileJSON {
			return writeJSON(cmd.OutOrStdout(), profile)
		}
		printProfile(cmd.OutOrStdout(), profile)
		return nil
	},
}

func init() {
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "output in JSON format")
}

func printProfile(out io.Writer, p *models.Profile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name:\t%s\n", p.DisplayName())
	fmt.Fprintf(w, "Handle:\t@%s\n", p.Login)
	if p.Bio != "" {
		fmt.Fprintf(w, "Bio:\t%s\n", p.Bio)
	}
	if p.Company != "" {
		fmt.Fprintf(w, "Company:\t%s\n", p.Company)
	}
	if p.Location != "" {
		fmt.Fprintf(w, "Location:\t%s\n", p.Location)
	}
	if blog := p.BlogURL(); blog != "" {
		fmt.Fprintf(w, "Blog:\t%s\n", blog)
	}
	fmt.Fprintf(w, "Repositories:\t%s\n", tui.FormatCount(p.PublicRepos))
	fmt.Fprintf(w, "Followers:\t%s\n", tui.FormatCount(p.Followers))
	fmt.Fprintf(w, "Following:\t%s\n", tui.FormatCount(p.Following))
	fmt.Fprintf(w, "Gists:\t%s\n", tui.FormatCount(p.PublicGists))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Joined:\t%s\n", p.CreatedAt.Format("January 2006"))
	}
	if p.HTMLURL != "" {
		fmt.Fprintf(w, "URL:\t%s\n", p.HTMLURL)
	}
}

func writeJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
