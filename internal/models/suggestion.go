// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// Suggestion is a handle match returned by the user search endpoint
type Suggestion struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// SearchHandlesResponse is the raw payload of /search/users
type SearchHandlesResponse struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Suggestion `json:"items"`
}

// SuggestionPage is one page of handle suggestions.
// HasMore is true when total_count exceeds page*perPage.
type SuggestionPage struct {
	Items      []Suggestion
	TotalCount int
	HasMore    bool
}
