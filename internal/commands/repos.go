// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/finder"
	"github.com/ghfinder/ghfinder-cli/internal/models"
	"github.com/ghfinder/ghfinder-cli/internal/tui"
)

var (
	reposPage int
	reposAll  bool
	reposJSON bool
)

var reposCmd = &cobra.Command{
	Use:   "repos <handle>",
	Short: "List a user's public repositories, most recently updated first",
	Long: `List a user's public repositories, most recently updated first.

Repositories are fetched ten at a time. Use --page to pick a page or --all to
keep fetching until a short page marks the end of the list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reposPage < 1 {
			return errors.ErrInvalidPage
		}

		pager := getContainer().NewRepositoryPager(cmd.Context())
		items, hasMore, err := collectRepositories(pager, args[0], reposPage, reposAll)
		if err != nil {
			return err
		}

		if reposJSON {
			return writeJSON(cmd.OutOrStdout(), items)
		}
		printRepositories(cmd.OutOrStdout(), items, hasMore, time.Now())
		return nil
	},
}

func init() {
	reposCmd.Flags().IntVar(&reposPage, "page", 1, "page to fetch")
	reposCmd.Flags().BoolVar(&reposAll, "all", false, "fetch every page starting at --page")
	reposCmd.Flags().BoolVar(&reposJSON, "json", false, "output in JSON format")
}

// collectRepositories drives pager synchronously from page, following
// NextPage while all is set and more pages remain.
func collectRepositories(pager *finder.RepositoryPager, handle string, page int, all bool) ([]models.Repository, bool, error) {
	if err := step(pager, pager.FetchPage(handle, page)); err != nil {
		return nil, false, err
	}

	for all {
		next := pager.NextPage()
		if next == nil {
			break
		}
		if err := step(pager, next); err != nil {
			return pager.Items(), pager.Cursor().HasMore, err
		}
	}

	return pager.Items(), pager.Cursor().HasMore, nil
}

func step(pager *finder.RepositoryPager, cmd tea.Cmd) error {
	if cmd == nil {
		return errors.ErrEmptyHandle
	}
	pager.Update(cmd())
	if pager.Status() == finder.StatusError {
		return pager.Err()
	}
	return nil
}

func printRepositories(out io.Writer, items []models.Repository, hasMore bool, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No Public Repositories")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTARS\tFORKS\tLANGUAGE\tUPDATED\tDESCRIPTION")
	for _, r := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			tui.FormatCount(r.StargazersCount),
			tui.FormatCount(r.ForksCount),
			orDash(r.Language),
			orDash(tui.FormatUpdated(r.UpdatedAt, now)),
			tui.Truncate(r.DescriptionOrDefault(), 60),
		)
	}
	_ = w.Flush()

	if hasMore {
		fmt.Fprintln(out, "\nMore repositories available; use --page or --all")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
