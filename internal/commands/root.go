// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghfinder/ghfinder-cli/internal/config"
	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/pkg/version"
)

var (
	cfg       *config.Config
	cfgFile   string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "ghfinder",
	Short: "Find GitHub users and browse their public repositories",
	Long: `ghfinder looks up public GitHub profiles from the terminal.

Run it without arguments to open the interactive finder: type a handle to get
suggestions as you type, press enter to load the profile, and scroll the
repository list to load more pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if debugMode {
			loaded.Debug = true
		}
		cfg = loaded
		resetContainer()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorMsg := errors.FormatUserError(err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMsg)

		if hint := errorHint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "\nHint: %s\n", hint)
		}

		os.Exit(1)
	}
}

// errorHint suggests a next step for common failures
func errorHint(err error) string {
	switch {
	case errors.IsRateLimited(err):
		return "Wait for the limit to reset, or slow requests down with 'ghfinder config set requests_per_second 1'"
	case errors.IsNotFound(err):
		return "Check the spelling of the handle, or try 'ghfinder search <query>'"
	case errors.IsNetworkError(err):
		return "Check your internet connection and try again"
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/ghfinder/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "log API requests to stderr")

	rootCmd.Flags().StringVar(&tuiHandle, "handle", "", "handle to load on start")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetBuildInfo())
	},
}
