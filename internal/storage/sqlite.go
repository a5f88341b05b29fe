package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/launchdeck/launchdeck/internal/model"
)

const currentSchemaVersion = 1

// prefsKey is the settings-table row holding the scalar preferences.
const prefsKey = "prefs"

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			color TEXT NOT NULL DEFAULT '#ffffff',
			icon TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'website',
			reminder_days INTEGER,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			visits INTEGER NOT NULL DEFAULT 0,
			last_visited TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_category ON bookmarks(category);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			favorite INTEGER NOT NULL DEFAULT 0,
			usage_count INTEGER NOT NULL DEFAULT 0,
			last_used TEXT,
			icon_url TEXT NOT NULL DEFAULT '',
			local_icon_path TEXT NOT NULL DEFAULT '',
			internet_icon TEXT NOT NULL DEFAULT '',
			is_manual INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_applications_path ON applications(path);
		CREATE INDEX IF NOT EXISTS idx_applications_favorite ON applications(favorite) WHERE favorite = 1;

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// prefsRow mirrors the scalar part of PersistedState for the settings table.
type prefsRow struct {
	Categories        []string          `json:"categories"`
	GridColumns       int               `json:"gridColumns"`
	IsDarkMode        bool              `json:"isDarkMode"`
	AnimationsEnabled bool              `json:"animationsEnabled"`
	SortBy            string            `json:"sortBy"`
	SortOrder         string            `json:"sortOrder"`
	ViewMode          string            `json:"viewMode"`
	Favorites         []string          `json:"favorites"`
	RecentApps        []string          `json:"recentApps"`
	AppCategories     map[string]string `json:"appCategories"`
	LastScanTime      *time.Time        `json:"lastScanTime"`
}

// Load reads the persisted state from the SQLite database.
func (s *SQLiteStorage) Load() (*PersistedState, error) {
	state := DefaultPersisted()

	var prefsJSON string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", prefsKey).Scan(&prefsJSON)
	if err == nil {
		var prefs prefsRow
		if err := json.Unmarshal([]byte(prefsJSON), &prefs); err == nil {
			state.Categories = prefs.Categories
			state.GridColumns = prefs.GridColumns
			state.IsDarkMode = prefs.IsDarkMode
			state.AnimationsEnabled = prefs.AnimationsEnabled
			state.SortBy = prefs.SortBy
			state.SortOrder = prefs.SortOrder
			state.ViewMode = prefs.ViewMode
			state.Launcher.Favorites = prefs.Favorites
			state.Launcher.RecentApps = prefs.RecentApps
			state.Launcher.AppCategories = prefs.AppCategories
			state.Launcher.LastScanTime = prefs.LastScanTime
		}
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, title, url, category, tags, color, icon, type,
		       reminder_days, created_at, updated_at, visits, last_visited
		FROM bookmarks
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var tagsJSON, typeStr, createdAtStr, updatedAtStr string
		var reminderDays sql.NullInt64
		var lastVisitedStr sql.NullString

		if err := rows.Scan(
			&b.ID, &b.Title, &b.URL, &b.Category, &tagsJSON, &b.Color, &b.Icon,
			&typeStr, &reminderDays, &createdAtStr, &updatedAtStr, &b.Visits, &lastVisitedStr,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
			b.Tags = []string{}
		}
		b.Type = model.BookmarkType(typeStr)
		if reminderDays.Valid {
			d := int(reminderDays.Int64)
			b.ReminderDays = &d
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
		if lastVisitedStr.Valid {
			if t, err := time.Parse(time.RFC3339, lastVisitedStr.String); err == nil {
				b.LastVisited = &t
			}
		}

		state.Bookmarks = append(state.Bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, name, path, category, description, version, favorite,
		       usage_count, last_used, icon_url, local_icon_path, internet_icon, is_manual
		FROM applications
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Application
		var favorite, isManual int
		var lastUsedStr sql.NullString

		if err := rows.Scan(
			&a.ID, &a.Name, &a.Path, &a.Category, &a.Description, &a.Version,
			&favorite, &a.UsageCount, &lastUsedStr,
			&a.IconURL, &a.LocalIconPath, &a.InternetIcon, &isManual,
		); err != nil {
			return nil, err
		}

		a.Favorite = favorite == 1
		a.IsManual = isManual == 1
		if lastUsedStr.Valid {
			if t, err := time.Parse(time.RFC3339, lastUsedStr.String); err == nil {
				a.LastUsed = &t
			}
		}

		state.Launcher.Applications = append(state.Launcher.Applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	state.normalize()
	return state, nil
}

// Save writes the persisted state to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(state *PersistedState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM applications"); err != nil {
		return err
	}

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, title, url, category, tags, color, icon, type,
			reminder_days, created_at, updated_at, visits, last_visited)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for _, b := range state.Bookmarks {
		tagsJSON, _ := json.Marshal(b.Tags)
		if b.Tags == nil {
			tagsJSON = []byte("[]")
		}

		var reminderDays *int
		if b.ReminderDays != nil {
			d := *b.ReminderDays
			reminderDays = &d
		}

		var lastVisited *string
		if b.LastVisited != nil {
			v := b.LastVisited.Format(time.RFC3339)
			lastVisited = &v
		}

		if _, err := bookmarkStmt.Exec(
			b.ID, b.Title, b.URL, b.Category, string(tagsJSON), b.Color, b.Icon,
			string(b.Type), reminderDays,
			b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339),
			b.Visits, lastVisited,
		); err != nil {
			return err
		}
	}

	appStmt, err := tx.Prepare(`
		INSERT INTO applications (id, name, path, category, description, version,
			favorite, usage_count, last_used, icon_url, local_icon_path, internet_icon, is_manual)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer appStmt.Close()

	for _, a := range state.Launcher.Applications {
		favorite := 0
		if a.Favorite {
			favorite = 1
		}
		isManual := 0
		if a.IsManual {
			isManual = 1
		}

		var lastUsed *string
		if a.LastUsed != nil {
			v := a.LastUsed.Format(time.RFC3339)
			lastUsed = &v
		}

		if _, err := appStmt.Exec(
			a.ID, a.Name, a.Path, a.Category, a.Description, a.Version,
			favorite, a.UsageCount, lastUsed,
			a.IconURL, a.LocalIconPath, a.InternetIcon, isManual,
		); err != nil {
			return err
		}
	}

	prefs := prefsRow{
		Categories:        state.Categories,
		GridColumns:       state.GridColumns,
		IsDarkMode:        state.IsDarkMode,
		AnimationsEnabled: state.AnimationsEnabled,
		SortBy:            state.SortBy,
		SortOrder:         state.SortOrder,
		ViewMode:          state.ViewMode,
		Favorites:         state.Launcher.Favorites,
		RecentApps:        state.Launcher.RecentApps,
		AppCategories:     state.Launcher.AppCategories,
		LastScanTime:      state.Launcher.LastScanTime,
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		prefsKey, string(prefsJSON),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default database path:
// ~/.config/launchdeck/launchdeck.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "launchdeck", "launchdeck.db"), nil
}
