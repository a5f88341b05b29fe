package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rules is the user-editable rules file. Aliases extend the built-in alias
// table used by application reconciliation; categories force a category for
// applications matched by name.
type Rules struct {
	Aliases    map[string][]string `yaml:"aliases"`
	Categories map[string]string   `yaml:"categories"`
}

// LoadRules reads and parses the aliases.yaml rules file.
// A missing file is not an error; empty rules are returned.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Rules{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	return &rules, nil
}

// DefaultRulesPath returns the default rules path:
// ~/.config/launchdeck/aliases.yaml
func DefaultRulesPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "launchdeck", "aliases.yaml"), nil
}
