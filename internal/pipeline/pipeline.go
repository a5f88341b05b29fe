// Package pipeline computes the ordered visible subset of bookmarks and
// applications from the full collections and the active criteria. Every
// function here is pure: inputs are never mutated and each call returns a
// fresh slice.
package pipeline

import (
	"sort"
	"strings"

	"github.com/launchdeck/launchdeck/internal/model"
)

// RecentAppLimit caps the "recent" application view.
const RecentAppLimit = 20

// BookmarkCriteria holds the active bookmark filter and sort settings.
type BookmarkCriteria struct {
	CurrentCategory string
	SearchTerm      string
	SearchCategory  string
	SearchTags      []string
	SortBy          string
	SortOrder       string
}

// BookmarkCriteriaFromState pulls the criteria fields out of the state.
func BookmarkCriteriaFromState(s model.State) BookmarkCriteria {
	return BookmarkCriteria{
		CurrentCategory: s.CurrentCategory,
		SearchTerm:      s.SearchTerm,
		SearchCategory:  s.SearchCategory,
		SearchTags:      s.SearchTags,
		SortBy:          s.SortBy,
		SortOrder:       s.SortOrder,
	}
}

// VisibleBookmarks filters and sorts bookmarks according to the criteria.
func VisibleBookmarks(bookmarks []model.Bookmark, c BookmarkCriteria) []model.Bookmark {
	visible := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if !MatchesCategory(b, c.CurrentCategory) {
			continue
		}
		if !MatchesSearchTerm(b, c.SearchTerm) {
			continue
		}
		if c.SearchCategory != "all" && !strings.EqualFold(b.Category, c.SearchCategory) {
			continue
		}
		if !MatchesTags(b, c.SearchTags) {
			continue
		}
		visible = append(visible, b)
	}

	sortBookmarks(visible, c.SortBy, c.SortOrder)
	return visible
}

// MatchesCategory reports whether the bookmark passes the sidebar category
// filter. "all" passes everything; otherwise case-insensitive equality.
func MatchesCategory(b model.Bookmark, currentCategory string) bool {
	if currentCategory == "" || currentCategory == "all" {
		return true
	}
	return strings.EqualFold(b.Category, currentCategory)
}

// MatchesSearchTerm reports whether the free-text search term matches the
// bookmark's title, URL, category or any tag (case-insensitive substring).
func MatchesSearchTerm(b model.Bookmark, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.URL), term) ||
		strings.Contains(strings.ToLower(b.Category), term) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// MatchesTags reports whether at least one requested tag is a
// case-insensitive substring of at least one bookmark tag. OR semantics
// across the requested tags; an empty request passes everything.
func MatchesTags(b model.Bookmark, searchTags []string) bool {
	if len(searchTags) == 0 {
		return true
	}
	for _, want := range searchTags {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		for _, tag := range b.Tags {
			if strings.Contains(strings.ToLower(tag), want) {
				return true
			}
		}
	}
	return false
}

// sortBookmarks stable-sorts in place. The sortBy comparator already encodes
// a direction (newest = most-recent-first); sortOrder then applies a uniform
// final negation for "asc". The UI default newest+desc therefore shows the
// most recent bookmark first, and compound cases like oldest+asc invert
// twice. That behavior is intentional and pinned by tests.
func sortBookmarks(bookmarks []model.Bookmark, sortBy, sortOrder string) {
	base := bookmarkComparator(sortBy)
	sort.SliceStable(bookmarks, func(i, j int) bool {
		c := base(bookmarks[i], bookmarks[j])
		if sortOrder == model.SortAsc {
			c = -c
		}
		return c < 0
	})
}

func bookmarkComparator(sortBy string) func(a, b model.Bookmark) int {
	switch sortBy {
	case model.SortOldest:
		return func(a, b model.Bookmark) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case model.SortAlphabetical:
		return func(a, b model.Bookmark) int {
			return strings.Compare(a.Title, b.Title)
		}
	case model.SortMostVisited:
		return func(a, b model.Bookmark) int {
			return b.Visits - a.Visits
		}
	case model.SortCategory:
		return func(a, b model.Bookmark) int {
			return strings.Compare(a.Category, b.Category)
		}
	default: // newest
		return func(a, b model.Bookmark) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// ApplicationCriteria holds the active application filter settings.
type ApplicationCriteria struct {
	SearchTerm string
	View       string // "all", "recent", "favorites" or a category name
}

// VisibleApplications filters applications according to the criteria. The
// "recent" view additionally sorts by last use and caps the result.
func VisibleApplications(apps []model.Application, c ApplicationCriteria) []model.Application {
	visible := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if !matchesAppSearch(a, c.SearchTerm) {
			continue
		}
		switch c.View {
		case "", model.AppViewAll:
			// no view filter
		case model.AppViewRecent:
			if a.LastUsed == nil {
				continue
			}
		case model.AppViewFavorites:
			if !a.Favorite {
				continue
			}
		default:
			if !strings.EqualFold(a.Category, c.View) {
				continue
			}
		}
		visible = append(visible, a)
	}

	if c.View == model.AppViewRecent {
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].LastUsed.After(*visible[j].LastUsed)
		})
		if len(visible) > RecentAppLimit {
			visible = visible[:RecentAppLimit]
		}
	}

	return visible
}

func matchesAppSearch(a model.Application, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Category), term)
}
