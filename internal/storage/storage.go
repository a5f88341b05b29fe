// Package storage is the persistence gateway: it reads and writes the
// durable subset of application state. Two backends exist, a JSON file and
// a SQLite database, behind the same interface.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
)

// Storage defines the interface for persisting application state.
type Storage interface {
	Load() (*PersistedState, error)
	Save(state *PersistedState) error
}

// PersistedState is the durable subset of state. Transient UI fields such
// as the live search term are deliberately absent.
type PersistedState struct {
	Bookmarks         []model.Bookmark `json:"bookmarks"`
	Categories        []string         `json:"categories"`
	GridColumns       int              `json:"gridColumns"`
	IsDarkMode        bool             `json:"isDarkMode"`
	AnimationsEnabled bool             `json:"animationsEnabled"`
	SortBy            string           `json:"sortBy"`
	SortOrder         string           `json:"sortOrder"`
	ViewMode          string           `json:"viewMode"`
	Launcher          LauncherSettings `json:"launcherSettings"`
}

// LauncherSettings holds the persisted application-launcher data. Favorites
// and recent apps are derived from the application records at save time but
// written out separately for compatibility with older state files.
type LauncherSettings struct {
	Favorites     []string            `json:"favorites"`  // application IDs
	RecentApps    []string            `json:"recentApps"` // application IDs, most recent first
	AppCategories map[string]string   `json:"appCategories"`
	LastScanTime  *time.Time          `json:"lastScanTime"`
	Applications  []model.Application `json:"applications"`
}

// DefaultPersisted returns an empty persisted state with initialized
// collections, matching the in-memory defaults.
func DefaultPersisted() *PersistedState {
	def := model.DefaultState()
	return &PersistedState{
		Bookmarks:         []model.Bookmark{},
		Categories:        []string{},
		GridColumns:       def.GridColumns,
		IsDarkMode:        def.IsDarkMode,
		AnimationsEnabled: def.AnimationsEnabled,
		SortBy:            def.SortBy,
		SortOrder:         def.SortOrder,
		ViewMode:          def.ViewMode,
		Launcher: LauncherSettings{
			Favorites:     []string{},
			RecentApps:    []string{},
			AppCategories: map[string]string{},
			Applications:  []model.Application{},
		},
	}
}

// normalize fills nil collections after decoding.
func (p *PersistedState) normalize() {
	if p.Bookmarks == nil {
		p.Bookmarks = []model.Bookmark{}
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Launcher.Favorites == nil {
		p.Launcher.Favorites = []string{}
	}
	if p.Launcher.RecentApps == nil {
		p.Launcher.RecentApps = []string{}
	}
	if p.Launcher.AppCategories == nil {
		p.Launcher.AppCategories = map[string]string{}
	}
	if p.Launcher.Applications == nil {
		p.Launcher.Applications = []model.Application{}
	}
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the persisted state from the JSON file.
// Returns defaults if the file doesn't exist (first run).
func (s *JSONStorage) Load() (*PersistedState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPersisted(), nil
		}
		return nil, err
	}

	var state PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	state.normalize()
	return &state, nil
}

// Save writes the persisted state to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(state *PersistedState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultStatePath returns the default JSON state path:
// ~/.config/launchdeck/state.json
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "launchdeck", "state.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
