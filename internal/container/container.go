// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package container

import (
	"context"

	"github.com/ghfinder/ghfinder-cli/internal/api"
	"github.com/ghfinder/ghfinder-cli/internal/config"
	"github.com/ghfinder/ghfinder-cli/internal/finder"
	"github.com/ghfinder/ghfinder-cli/internal/prefs"
)

// Container holds all application dependencies
type Container struct {
	config *config.Config
	client *api.Client
	prefs  *prefs.Store
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) *Container {
	client := api.NewClient(api.Options{
		BaseURL:           cfg.APIURL,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.Timeout,
		CacheTTL:          cfg.CacheTTL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Debug:             cfg.Debug,
	})

	return &Container{
		config: cfg,
		client: client,
		prefs:  prefs.NewStore(""),
	}
}

// Config returns the application configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Client returns the remote resource client
func (c *Container) Client() *api.Client {
	return c.client
}

// Preferences returns the preference store
func (c *Container) Preferences() *prefs.Store {
	return c.prefs
}

// NewSession creates a browsing session bound to ctx
func (c *Container) NewSession(ctx context.Context) *finder.Session {
	return finder.NewSession(ctx, c.client, c.SessionOptions())
}

// SessionOptions maps configuration onto finder options
func (c *Container) SessionOptions() finder.Options {
	return finder.Options{
		Debounce:       c.config.Debounce,
		MinQueryLength: c.config.MinQueryLength,
	}
}

// NewRepositoryPager creates a standalone pager for non-interactive listing
func (c *Container) NewRepositoryPager(ctx context.Context) *finder.RepositoryPager {
	return finder.NewRepositoryPager(ctx, c.client)
}

// Close releases the client's background resources
func (c *Container) Close() {
	c.client.Close()
}
