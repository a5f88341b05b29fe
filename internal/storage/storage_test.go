package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/storage"
)

func samplePersisted() *storage.PersistedState {
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	visited := created.Add(48 * time.Hour)
	used := created.Add(time.Hour)
	reminder := 14

	state := storage.DefaultPersisted()
	state.Bookmarks = []model.Bookmark{
		{
			ID:           "b1",
			Title:        "Go blog",
			URL:          "https://go.dev/blog",
			Category:     "Development",
			Tags:         []string{"go", "reading"},
			Color:        "#1a2b3c",
			Icon:         "https://go.dev/favicon.ico",
			Type:         model.TypeWebsite,
			ReminderDays: &reminder,
			CreatedAt:    created,
			UpdatedAt:    created,
			Visits:       3,
			LastVisited:  &visited,
		},
		{
			ID:        "b2",
			Title:     "File share",
			URL:       "file:///mnt/share",
			Type:      model.TypeProgram,
			CreatedAt: created.Add(time.Minute),
			UpdatedAt: created.Add(time.Minute),
		},
	}
	state.Categories = []string{"Development"}
	state.GridColumns = 6
	state.IsDarkMode = true
	state.SortBy = model.SortAlphabetical
	state.SortOrder = model.SortAsc
	state.ViewMode = model.ViewList
	state.Launcher.Applications = []model.Application{
		{
			ID:         "a1",
			Name:       "Editor",
			Path:       "/usr/bin/editor",
			Category:   "Development",
			Favorite:   true,
			UsageCount: 12,
			LastUsed:   &used,
		},
	}
	state.Launcher.Favorites = []string{"a1"}
	state.Launcher.AppCategories = map[string]string{"Editor": "Development"}
	return state
}

func assertRoundtrip(t *testing.T, loaded *storage.PersistedState) {
	t.Helper()

	if len(loaded.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(loaded.Bookmarks))
	}
	b := loaded.Bookmarks[0]
	if b.ID != "b1" || b.Title != "Go blog" || b.URL != "https://go.dev/blog" {
		t.Errorf("bookmark fields lost: %+v", b)
	}
	if len(b.Tags) != 2 || b.Tags[0] != "go" {
		t.Errorf("tags lost: %v", b.Tags)
	}
	if b.ReminderDays == nil || *b.ReminderDays != 14 {
		t.Errorf("reminder lost: %v", b.ReminderDays)
	}
	if b.LastVisited == nil {
		t.Error("lastVisited lost")
	}
	if b.Visits != 3 {
		t.Errorf("visits lost: %d", b.Visits)
	}
	if loaded.Bookmarks[1].LastVisited != nil {
		t.Error("expected nil lastVisited to stay nil")
	}

	if loaded.GridColumns != 6 || !loaded.IsDarkMode {
		t.Errorf("preferences lost: columns=%d dark=%v", loaded.GridColumns, loaded.IsDarkMode)
	}
	if loaded.SortBy != model.SortAlphabetical || loaded.SortOrder != model.SortAsc {
		t.Errorf("sort preferences lost: %s/%s", loaded.SortBy, loaded.SortOrder)
	}

	if len(loaded.Launcher.Applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(loaded.Launcher.Applications))
	}
	a := loaded.Launcher.Applications[0]
	if !a.Favorite || a.UsageCount != 12 || a.LastUsed == nil {
		t.Errorf("application user data lost: %+v", a)
	}
	if loaded.Launcher.AppCategories["Editor"] != "Development" {
		t.Errorf("app categories lost: %v", loaded.Launcher.AppCategories)
	}
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := storage.NewJSONStorage(path)

	if err := s.Save(samplePersisted()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertRoundtrip(t, loaded)
}

func TestJSONStorage_LoadMissingFileReturnsDefaults(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "does-not-exist.json"))

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Bookmarks) != 0 {
		t.Errorf("expected empty defaults, got %d bookmarks", len(loaded.Bookmarks))
	}
	if loaded.SortBy != model.SortNewest || loaded.SortOrder != model.SortDesc {
		t.Errorf("expected default sort, got %s/%s", loaded.SortBy, loaded.SortOrder)
	}
}

func TestJSONStorage_LoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(path).Load(); err == nil {
		t.Error("expected error for malformed state file")
	}
}

func TestJSONStorage_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := storage.NewJSONStorage(path)

	if err := s.Save(storage.DefaultPersisted()); err != nil {
		t.Fatalf("save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("state file missing after save: %v", err)
	}
}

func TestJSONStorage_LoadNormalizesNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"gridColumns": 4}`), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := storage.NewJSONStorage(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Bookmarks == nil || loaded.Categories == nil {
		t.Error("expected collections initialized after load")
	}
	if loaded.Launcher.AppCategories == nil || loaded.Launcher.Applications == nil {
		t.Error("expected launcher collections initialized after load")
	}
}
