// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"strings"
	"time"
)

// Profile represents a public user profile returned by /users/{handle}
type Profile struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Blog        string    `json:"blog"`
	HTMLURL     string    `json:"html_url"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicGists int       `json:"public_gists"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName returns the profile name, falling back to the login
func (p *Profile) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Login
}

// BlogURL returns the blog link with a scheme. Empty when no blog is set.
func (p *Profile) BlogURL() string {
	blog := strings.TrimSpace(p.Blog)
	if blog == "" {
		return ""
	}
	if strings.HasPrefix(blog, "http://") || strings.HasPrefix(blog, "https://") {
		return blog
	}
	return "https://" + blog
}
