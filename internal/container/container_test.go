// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghfinder/ghfinder-cli/internal/config"
)

func TestNewContainer(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	cfg.APIURL = "https://ghe.example.com/api/v3/"
	cfg.Debounce = 150 * time.Millisecond
	cfg.MinQueryLength = 3

	c := NewContainer(&cfg)
	defer c.Close()

	require.NotNil(t, c.Client())
	assert.Equal(t, "https://ghe.example.com/api/v3", c.Client().GetAPIEndpoint())
	assert.Same(t, &cfg, c.Config())
	assert.NotEmpty(t, c.Preferences().Path())

	opts := c.SessionOptions()
	assert.Equal(t, 150*time.Millisecond, opts.Debounce)
	assert.Equal(t, 3, opts.MinQueryLength)

	s := c.NewSession(context.Background())
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Autocomplete().MinQueryLength())
	assert.Empty(t, s.Committed())

	assert.NotNil(t, c.NewRepositoryPager(context.Background()))
}
