// Package config loads the application configuration and the optional user
// rules file for application aliases.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	LogLevel            string   `json:"logLevel"`
	LogJSON             bool     `json:"logJSON"` // production JSON encoder instead of pretty output
	ScanDirs            []string `json:"scanDirs"`            // extra application directories
	CheckExcludeDomains []string `json:"checkExcludeDomains"` // 404s here are "possibly private"
	CheckConcurrency    int      `json:"checkConcurrency"`
	RulesFile           string   `json:"rulesFile"` // aliases.yaml path, empty = default
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:            "info",
		ScanDirs:            []string{},
		CheckExcludeDomains: []string{"github.com", "gitlab.com"},
		CheckConcurrency:    10,
	}
}

// Load reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if the write fails
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.ScanDirs == nil {
		config.ScanDirs = defaults.ScanDirs
	}
	if config.CheckExcludeDomains == nil {
		config.CheckExcludeDomains = defaults.CheckExcludeDomains
	}
	if config.CheckConcurrency < 1 {
		config.CheckConcurrency = defaults.CheckConcurrency
	}

	return &config, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigPath returns the default config path:
// ~/.config/launchdeck/config.json
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "launchdeck", "config.json"), nil
}
