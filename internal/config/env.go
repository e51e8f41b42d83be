// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// Environment variable constants
const (
	// EnvPrefix is prepended to every configuration key when read from the environment
	EnvPrefix = "GHFINDER"

	// EnvAPIURL overrides the API base URL
	EnvAPIURL = "GHFINDER_API_URL"

	// EnvTimeout overrides the per-request timeout
	EnvTimeout = "GHFINDER_TIMEOUT"

	// EnvDebounce overrides the autocomplete quiet period
	EnvDebounce = "GHFINDER_DEBOUNCE"

	// EnvDebug enables client request logging
	EnvDebug = "GHFINDER_DEBUG"
)
