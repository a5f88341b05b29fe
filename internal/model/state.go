package model

import "sort"

// Sort keys accepted by the filter-sort pipeline.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortAlphabetical = "alphabetical"
	SortMostVisited  = "most-visited"
	SortCategory     = "category"
)

// Sort directions. SortDesc is the UI default.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// View modes for the bookmark collection.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Application view filters.
const (
	AppViewAll       = "all"
	AppViewRecent    = "recent"
	AppViewFavorites = "favorites"
)

// State is the canonical in-memory application state. It is only ever
// replaced as a whole through the store; collections are copy-on-write so
// that change detection by identity comparison is correct.
type State struct {
	Bookmarks    []Bookmark    `json:"bookmarks"`
	Categories   []string      `json:"categories"`
	Applications []Application `json:"applications"`

	GridColumns       int  `json:"gridColumns"` // 2..8
	IsDarkMode        bool `json:"isDarkMode"`
	AnimationsEnabled bool `json:"animationsEnabled"`

	SearchTerm      string   `json:"searchTerm"`
	CurrentCategory string   `json:"currentCategory"`
	SearchCategory  string   `json:"searchCategory"`
	SearchTags      []string `json:"searchTags"`
	SortBy          string   `json:"sortBy"`
	SortOrder       string   `json:"sortOrder"`
	ViewMode        string   `json:"viewMode"`
	CurrentView     string   `json:"currentView"` // application view filter
}

// DefaultState returns the state used before anything is hydrated from storage.
func DefaultState() State {
	return State{
		Bookmarks:         []Bookmark{},
		Categories:        []string{},
		Applications:      []Application{},
		GridColumns:       4,
		IsDarkMode:        false,
		AnimationsEnabled: true,
		SearchTerm:        "",
		CurrentCategory:   "all",
		SearchCategory:    "all",
		SearchTags:        []string{},
		SortBy:            SortNewest,
		SortOrder:         SortDesc,
		ViewMode:          ViewGrid,
		CurrentView:       AppViewAll,
	}
}

// BookmarkByID finds a bookmark by ID, returns nil if not found.
func (s State) BookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// ApplicationByID finds an application by ID, returns nil if not found.
func (s State) ApplicationByID(id string) *Application {
	for i := range s.Applications {
		if s.Applications[i].ID == id {
			return &s.Applications[i]
		}
	}
	return nil
}

// HasCategory reports whether name is in the categories set (exact match).
func (s State) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// SortedCategories returns a sorted copy of the categories set.
func SortedCategories(categories []string) []string {
	out := make([]string, len(categories))
	copy(out, categories)
	sort.Strings(out)
	return out
}
