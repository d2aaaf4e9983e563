// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration, loadable from a JSON file. All fields
// are optional; missing values use defaults or come from flags and env.
type Config struct {
	APIBase     string `json:"api_base,omitempty"`     // FitRate backend origin
	UserID      string `json:"user_id,omitempty"`      // Default user id for CLI actions
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Local client-state database
	DatabaseURL string `json:"database_url,omitempty"` // Postgres connection URL (serve)
	TokenSecret string `json:"token_secret,omitempty"` // Card token HMAC secret (serve)
	FreePerDay  int    `json:"free_per_day,omitempty"` // Free daily scan allowance
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.FreePerDay < 0 {
		return fmt.Errorf("config error: 'free_per_day' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Flags always win over the config file, which wins over env.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.APIBase == "" {
		result.APIBase = defaults.APIBase
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TokenSecret == "" {
		result.TokenSecret = defaults.TokenSecret
	}
	if result.FreePerDay == 0 {
		result.FreePerDay = defaults.FreePerDay
	}
	return result
}
