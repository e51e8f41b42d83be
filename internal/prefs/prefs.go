// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists display preferences between sessions.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const fileName = "preferences.yaml"

// Theme names accepted by ParseTheme
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences is the persisted preference document
type Preferences struct {
	Dark bool `yaml:"dark"`
}

// Theme returns the theme name for p
func (p Preferences) Theme() string {
	if p.Dark {
		return ThemeDark
	}
	return ThemeLight
}

// Store reads and writes preferences under a single directory
type Store struct {
	dir string
	mu  sync.Mutex
}

// DefaultDir returns $XDG_CONFIG_HOME/ghfinder
func DefaultDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = xdg.ConfigHome
	}
	return filepath.Join(configDir, "ghfinder")
}

// NewStore creates a store rooted at dir, or DefaultDir when dir is empty
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Path returns the preference file location
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns the stored preferences. A missing file yields the defaults.
func (s *Store) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Preferences, error) {
	var p Preferences
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return p, nil
}

// Save writes p to disk
func (s *Store) Save(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p)
}

func (s *Store) save(p Preferences) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return os.WriteFile(s.Path(), data, 0o600)
}

// ToggleTheme flips the stored theme and returns the new preferences
func (s *Store) ToggleTheme() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return p, err
	}
	p.Dark = !p.Dark
	return p, s.save(p)
}

// SetTheme stores the named theme
func (s *Store) SetTheme(name string) (Preferences, error) {
	dark, err := ParseTheme(name)
	if err != nil {
		return Preferences{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return p, err
	}
	p.Dark = dark
	return p, s.save(p)
}

// ParseTheme reports whether name selects the dark theme
func ParseTheme(name string) (bool, error) {
	switch name {
	case ThemeDark:
		return true, nil
	case ThemeLight:
		return false, nil
	default:
		return false, fmt.Errorf("unknown theme %q (expected %s or %s)", name, ThemeDark, ThemeLight)
	}
}
