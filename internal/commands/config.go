// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghfinder/ghfinder-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ghfinder configuration",
	Long: fmt.Sprintf(`Manage ghfinder configuration.

Values are read from the config file, then GHFINDER_* environment variables.
Valid keys: %s`, strings.Join(config.Keys(), ", ")),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		effective := struct {
			APIURL            string  `yaml:"api_url"`
			Timeout           string  `yaml:"timeout"`
			Debounce          string  `yaml:"debounce"`
			MinQueryLength    int     `yaml:"min_query_length"`
			CacheTTL          string  `yaml:"cache_ttl"`
			RequestsPerSecond float64 `yaml:"requests_per_second"`
			Debug             bool    `yaml:"debug"`
			UserAgent         string  `yaml:"user_agent,omitempty"`
		}{
			APIURL:            cfg.APIURL,
			Timeout:           cfg.Timeout.String(),
			Debounce:          cfg.Debounce.String(),
			MinQueryLength:    cfg.MinQueryLength,
			CacheTTL:          cfg.CacheTTL.String(),
			RequestsPerSecond: cfg.RequestsPerSecond,
			Debug:             cfg.Debug,
			UserAgent:         cfg.UserAgent,
		}

		b, err := yaml.Marshal(effective)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		path := cfgFile
		if path == "" {
			path = config.ConfigFilePath()
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a configuration value",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.SetValue(cfgFile, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s in %s\n", args[0], args[1], path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}
