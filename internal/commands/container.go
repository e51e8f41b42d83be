// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/ghfinder/ghfinder-cli/internal/config"
	"github.com/ghfinder/ghfinder-cli/internal/container"
)

var appContainer *container.Container

// getContainer returns the application container, creating it if necessary
func getContainer() *container.Container {
	if appContainer == nil {
		if cfg == nil {
			defaults := config.Default()
			cfg = &defaults
		}
		appContainer = container.NewContainer(cfg)
	}
	return appContainer
}

// resetContainer drops the container so the next call rebuilds it from cfg
func resetContainer() {
	if appContainer != nil {
		appContainer.Close()
	}
	appContainer = nil
}
