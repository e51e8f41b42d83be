// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyAPIURL            = "api_url"
	KeyTimeout           = "timeout"
	KeyDebounce          = "debounce"
	KeyMinQueryLength    = "min_query_length"
	KeyCacheTTL          = "cache_ttl"
	KeyRequestsPerSecond = "requests_per_second"
	KeyDebug             = "debug"
	KeyUserAgent         = "user_agent"
)

type Config struct {
	APIURL            string        `mapstructure:"api_url" yaml:"api_url"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Debounce          time.Duration `mapstructure:"debounce" yaml:"debounce"`
	MinQueryLength    int           `mapstructure:"min_query_length" yaml:"min_query_length"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Debug             bool          `mapstructure:"debug" yaml:"debug"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
}

var defaultConfig = Config{
	APIURL:         "https://api.github.com",
	Timeout:        10 * time.Second,
	Debounce:       400 * time.Millisecond,
	MinQueryLength: 2,
	CacheTTL:       2 * time.Minute,
}

// Default returns a copy of the built-in configuration
func Default() Config {
	return defaultConfig
}

// Keys lists every settable configuration key
func Keys() []string {
	keys := []string{
		KeyAPIURL, KeyTimeout, KeyDebounce, KeyMinQueryLength,
		KeyCacheTTL, KeyRequestsPerSecond, KeyDebug, KeyUserAgent,
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known configuration key
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// ConfigDir returns $XDG_CONFIG_HOME/ghfinder
func ConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = xdg.ConfigHome
	}
	return filepath.Join(configDir, "ghfinder")
}

// ConfigFilePath returns the default config file location
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func newViper(cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIURL, defaultConfig.APIURL)
	v.SetDefault(KeyTimeout, defaultConfig.Timeout)
	v.SetDefault(KeyDebounce, defaultConfig.Debounce)
	v.SetDefault(KeyMinQueryLength, defaultConfig.MinQueryLength)
	v.SetDefault(KeyCacheTTL, defaultConfig.CacheTTL)
	v.SetDefault(KeyRequestsPerSecond, defaultConfig.RequestsPerSecond)
	v.SetDefault(KeyDebug, defaultConfig.Debug)
	v.SetDefault(KeyUserAgent, defaultConfig.UserAgent)

	return v
}

// readConfig loads the config file. A missing file is only an error when
// required is set.
func readConfig(v *viper.Viper, required bool) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LoadConfig reads the config file (cfgFile, or the default search path when
// empty), applies GHFINDER_* environment overrides and validates the result.
func LoadConfig(cfgFile string) (*Config, error) {
	v := newViper(cfgFile)
	if err := readConfig(v, cfgFile != ""); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	config.APIURL = strings.TrimRight(strings.TrimSpace(config.APIURL), "/")
	if config.APIURL == "" {
		config.APIURL = defaultConfig.APIURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the client and finder cannot work with
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("invalid %s %q: must start with http:// or https://", KeyAPIURL, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyTimeout, c.Timeout)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyDebounce, c.Debounce)
	}
	if c.MinQueryLength < 1 {
		return fmt.Errorf("invalid %s %d: must be at least 1", KeyMinQueryLength, c.MinQueryLength)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid %s %s: must not be negative", KeyCacheTTL, c.CacheTTL)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", KeyRequestsPerSecond, c.RequestsPerSecond)
	}
	return nil
}

// SetValue stores key=value in the config file and returns the written path.
// The value is validated by reloading the resulting configuration.
func SetValue(cfgFile, key, value string) (string, error) {
	if !IsKey(key) {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	path := cfgFile
	if path == "" {
		path = ConfigFilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := readConfig(v, false); err != nil {
		return "", err
	}
	v.Set(key, value)

	candidate := newViper("")
	for k, val := range v.AllSettings() {
		candidate.Set(k, val)
	}
	var config Config
	if err := candidate.Unmarshal(&config); err != nil {
		return "", fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := config.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// SaveConfig writes every field of config to path (or the default location)
func SaveConfig(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = ConfigFilePath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set(KeyAPIURL, config.APIURL)
	v.Set(KeyTimeout, config.Timeout.String())
	v.Set(KeyDebounce, config.Debounce.String())
	v.Set(KeyMinQueryLength, config.MinQueryLength)
	v.Set(KeyCacheTTL, config.CacheTTL.String())
	v.Set(KeyRequestsPerSecond, config.RequestsPerSecond)
	v.Set(KeyDebug, config.Debug)
	v.Set(KeyUserAgent, config.UserAgent)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
