package store

import (
	"fmt"
	"sort"

	"github.com/launchdeck/launchdeck/internal/logger"
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/storage"
)

// LoadFromStorage hydrates the store from the persistence gateway. Read
// failures are not fatal: they are logged and the defaults stay in place.
func (s *Store) LoadFromStorage() {
	if s.gateway == nil {
		return
	}

	persisted, err := s.gateway.Load()
	if err != nil {
		s.log.Warn("failed to load persisted state, using defaults", logger.Err(err))
		return
	}

	apps := persisted.Launcher.Applications

	// Older state files carry favorites only as an ID list.
	if len(persisted.Launcher.Favorites) > 0 {
		favorite := make(map[string]bool, len(persisted.Launcher.Favorites))
		for _, id := range persisted.Launcher.Favorites {
			favorite[id] = true
		}
		restored := make([]model.Application, len(apps))
		copy(restored, apps)
		for i := range restored {
			if favorite[restored[i].ID] {
				restored[i].Favorite = true
			}
		}
		apps = restored
	}

	categories := persisted.Categories
	for _, b := range persisted.Bookmarks {
		categories = ensureCategory(categories, b.Category)
	}

	gridColumns := clampGridColumns(persisted.GridColumns)

	sortBy := persisted.SortBy
	if sortBy == "" {
		sortBy = model.SortNewest
	}
	sortOrder := persisted.SortOrder
	if sortOrder == "" {
		sortOrder = model.SortDesc
	}
	viewMode := persisted.ViewMode
	if viewMode == "" {
		viewMode = model.ViewGrid
	}

	s.launcherMeta.AppCategories = persisted.Launcher.AppCategories
	s.launcherMeta.LastScanTime = persisted.Launcher.LastScanTime

	s.SetState(Partial{
		Bookmarks:         &persisted.Bookmarks,
		Categories:        &categories,
		Applications:      &apps,
		GridColumns:       &gridColumns,
		IsDarkMode:        &persisted.IsDarkMode,
		AnimationsEnabled: &persisted.AnimationsEnabled,
		SortBy:            &sortBy,
		SortOrder:         &sortOrder,
		ViewMode:          &viewMode,
	})
}

// SaveToStorage writes the durable subset of state through the gateway.
// Write failures are returned to the caller so the user can be told that
// the change may not survive a restart.
func (s *Store) SaveToStorage() error {
	if s.gateway == nil {
		return nil
	}

	st := s.state

	favorites := []string{}
	for _, a := range st.Applications {
		if a.Favorite {
			favorites = append(favorites, a.ID)
		}
	}

	recent := recentAppIDs(st.Applications)

	persisted := &storage.PersistedState{
		Bookmarks:         st.Bookmarks,
		Categories:        st.Categories,
		GridColumns:       st.GridColumns,
		IsDarkMode:        st.IsDarkMode,
		AnimationsEnabled: st.AnimationsEnabled,
		SortBy:            st.SortBy,
		SortOrder:         st.SortOrder,
		ViewMode:          st.ViewMode,
		Launcher: storage.LauncherSettings{
			Favorites:     favorites,
			RecentApps:    recent,
			AppCategories: s.launcherMeta.AppCategories,
			LastScanTime:  s.launcherMeta.LastScanTime,
			Applications:  st.Applications,
		},
	}

	if err := s.gateway.Save(persisted); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// recentAppIDs returns the IDs of launched applications, most recent first.
func recentAppIDs(apps []model.Application) []string {
	used := []model.Application{}
	for _, a := range apps {
		if a.LastUsed != nil {
			used = append(used, a)
		}
	}
	sort.SliceStable(used, func(i, j int) bool {
		return used[i].LastUsed.After(*used[j].LastUsed)
	})

	ids := []string{}
	for _, a := range used {
		ids = append(ids, a.ID)
	}
	return ids
}

func clampGridColumns(n int) int {
	if n < 2 {
		return 2
	}
	if n > 8 {
		return 8
	}
	return n
}
