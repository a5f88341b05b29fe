package store

import (
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

// Transient filter state. These never touch storage; the live search text
// and active filters are not part of the persisted subset.

// SetSearchTerm updates the free-text search.
func (s *Store) SetSearchTerm(term string) {
	s.SetState(Partial{SearchTerm: &term})
}

// SetCurrentCategory updates the sidebar category filter ("all" clears it).
func (s *Store) SetCurrentCategory(category string) {
	s.SetState(Partial{CurrentCategory: &category})
}

// SetSearchCategory updates the advanced-search category filter. It is
// independent of the sidebar filter; both must pass.
func (s *Store) SetSearchCategory(category string) {
	s.SetState(Partial{SearchCategory: &category})
}

// SetSearchTags updates the advanced-search tag filter (OR semantics).
func (s *Store) SetSearchTags(tags []string) {
	cleaned := validate.Tags(tags)
	s.SetState(Partial{SearchTags: &cleaned})
}

// SetCurrentView updates the application view filter.
func (s *Store) SetCurrentView(view string) {
	s.SetState(Partial{CurrentView: &view})
}

// Durable preferences. Each of these persists on change.

// SetSort updates the sort key and direction.
func (s *Store) SetSort(sortBy, sortOrder string) error {
	switch sortBy {
	case model.SortNewest, model.SortOldest, model.SortAlphabetical,
		model.SortMostVisited, model.SortCategory:
	default:
		return &validate.Error{Field: "sortBy", Reason: "unknown sort key"}
	}
	switch sortOrder {
	case model.SortAsc, model.SortDesc:
	default:
		return &validate.Error{Field: "sortOrder", Reason: "must be asc or desc"}
	}

	s.SetState(Partial{SortBy: &sortBy, SortOrder: &sortOrder})
	return s.SaveToStorage()
}

// SetViewMode switches between grid and list rendering.
func (s *Store) SetViewMode(mode string) error {
	if mode != model.ViewGrid && mode != model.ViewList {
		return &validate.Error{Field: "viewMode", Reason: "must be grid or list"}
	}
	s.SetState(Partial{ViewMode: &mode})
	return s.SaveToStorage()
}

// SetGridColumns sets the grid width, bounded to 2..8 columns.
func (s *Store) SetGridColumns(columns int) error {
	if columns < 2 || columns > 8 {
		return &validate.Error{Field: "gridColumns", Reason: "must be between 2 and 8"}
	}
	s.SetState(Partial{GridColumns: &columns})
	return s.SaveToStorage()
}

// SetDarkMode toggles the theme preference.
func (s *Store) SetDarkMode(enabled bool) error {
	s.SetState(Partial{IsDarkMode: &enabled})
	return s.SaveToStorage()
}

// SetAnimationsEnabled toggles UI animations.
func (s *Store) SetAnimationsEnabled(enabled bool) error {
	s.SetState(Partial{AnimationsEnabled: &enabled})
	return s.SaveToStorage()
}
