// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// Repository represents one entry of /users/{handle}/repos.
// Description and Language are empty when the provider sends null.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	HTMLURL         string    `json:"html_url"`
	Fork            bool      `json:"fork"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DescriptionOrDefault returns the description or a placeholder
func (r Repository) DescriptionOrDefault() string {
	if r.Description == "" {
		return "No description provided"
	}
	return r.Description
}
