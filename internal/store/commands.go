package store

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

var (
	ErrBookmarkNotFound    = errors.New("bookmark not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNotFound    = errors.New("category not found")
)

// AddBookmark validates the params, creates the bookmark and adds it to
// state. A new category is added to the categories set automatically.
func (s *Store) AddBookmark(params model.NewBookmarkParams) (model.Bookmark, error) {
	title, err := validate.Title(params.Title)
	if err != nil {
		return model.Bookmark{}, err
	}
	url, err := validate.URL(params.URL)
	if err != nil {
		return model.Bookmark{}, err
	}
	color, err := validate.Color(params.Color)
	if err != nil {
		return model.Bookmark{}, err
	}
	reminder, err := validate.ReminderDays(params.ReminderDays)
	if err != nil {
		return model.Bookmark{}, err
	}

	icon := params.Icon
	if icon == "" {
		icon = validate.FaviconURL(url)
	}
	typ := params.Type
	if typ == "" {
		typ = validate.TypeForURL(url)
	}

	bookmark := model.NewBookmark(model.NewBookmarkParams{
		Title:        title,
		URL:          url,
		Category:     validate.Category(params.Category),
		Tags:         validate.Tags(params.Tags),
		Color:        color,
		Icon:         icon,
		Type:         typ,
		ReminderDays: reminder,
	})

	st := s.state
	bookmarks := append(append([]model.Bookmark{}, st.Bookmarks...), bookmark)
	categories := ensureCategory(st.Categories, bookmark.Category)

	s.SetState(Partial{Bookmarks: &bookmarks, Categories: &categories})
	return bookmark, s.SaveToStorage()
}

// UpdateBookmark applies validated params to an existing bookmark. Identity,
// creation time and visit history are preserved; updatedAt is refreshed.
func (s *Store) UpdateBookmark(id string, params model.NewBookmarkParams) (model.Bookmark, error) {
	st := s.state
	existing := st.BookmarkByID(id)
	if existing == nil {
		return model.Bookmark{}, ErrBookmarkNotFound
	}

	title, err := validate.Title(params.Title)
	if err != nil {
		return model.Bookmark{}, err
	}
	url, err := validate.URL(params.URL)
	if err != nil {
		return model.Bookmark{}, err
	}
	color, err := validate.Color(params.Color)
	if err != nil {
		return model.Bookmark{}, err
	}
	reminder, err := validate.ReminderDays(params.ReminderDays)
	if err != nil {
		return model.Bookmark{}, err
	}

	icon := params.Icon
	if icon == "" {
		icon = validate.FaviconURL(url)
	}
	typ := params.Type
	if typ == "" {
		typ = validate.TypeForURL(url)
	}

	updated := *existing
	updated.Title = title
	updated.URL = url
	updated.Category = validate.Category(params.Category)
	updated.Tags = validate.Tags(params.Tags)
	updated.Color = color
	updated.Icon = icon
	updated.Type = typ
	updated.ReminderDays = reminder
	updated.UpdatedAt = time.Now()

	bookmarks := replaceBookmark(st.Bookmarks, updated)
	categories := ensureCategory(st.Categories, updated.Category)

	s.SetState(Partial{Bookmarks: &bookmarks, Categories: &categories})
	return updated, s.SaveToStorage()
}

// DeleteBookmark removes a bookmark from state.
func (s *Store) DeleteBookmark(id string) error {
	st := s.state
	if st.BookmarkByID(id) == nil {
		return ErrBookmarkNotFound
	}

	bookmarks := make([]model.Bookmark, 0, len(st.Bookmarks)-1)
	for _, b := range st.Bookmarks {
		if b.ID != id {
			bookmarks = append(bookmarks, b)
		}
	}

	s.SetState(Partial{Bookmarks: &bookmarks})
	return s.SaveToStorage()
}

// RecordVisit increments the visit counter and stamps lastVisited. Called
// when a bookmark is launched.
func (s *Store) RecordVisit(id string) (model.Bookmark, error) {
	st := s.state
	existing := st.BookmarkByID(id)
	if existing == nil {
		return model.Bookmark{}, ErrBookmarkNotFound
	}

	now := time.Now()
	updated := *existing
	updated.Visits++
	updated.LastVisited = &now
	updated.UpdatedAt = now

	bookmarks := replaceBookmark(st.Bookmarks, updated)
	s.SetState(Partial{Bookmarks: &bookmarks})
	return updated, s.SaveToStorage()
}

// AddCategory adds a category independent of any bookmark.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &validate.Error{Field: "category", Reason: "must not be empty"}
	}

	st := s.state
	for _, c := range st.Categories {
		if strings.EqualFold(c, name) {
			return ErrCategoryExists
		}
	}

	categories := ensureCategory(st.Categories, name)
	s.SetState(Partial{Categories: &categories})
	return s.SaveToStorage()
}

// DeleteCategory removes a category. Bookmarks referencing it keep existing
// with an empty category; they are never deleted alongside.
func (s *Store) DeleteCategory(name string) error {
	st := s.state
	if !st.HasCategory(name) {
		return ErrCategoryNotFound
	}

	categories := make([]string, 0, len(st.Categories)-1)
	for _, c := range st.Categories {
		if c != name {
			categories = append(categories, c)
		}
	}

	bookmarks := st.Bookmarks
	touched := false
	for _, b := range st.Bookmarks {
		if b.Category == name {
			touched = true
			break
		}
	}
	if touched {
		cleared := make([]model.Bookmark, len(st.Bookmarks))
		copy(cleared, st.Bookmarks)
		for i := range cleared {
			if cleared[i].Category == name {
				cleared[i].Category = ""
				cleared[i].UpdatedAt = time.Now()
			}
		}
		bookmarks = cleared
	}

	s.SetState(Partial{Categories: &categories, Bookmarks: &bookmarks})
	return s.SaveToStorage()
}

// ImportBookmarks adds externally parsed bookmarks. Records whose URL is
// already present are counted as duplicates and skipped; categories of
// added bookmarks join the categories set.
func (s *Store) ImportBookmarks(imported []model.Bookmark) (added, duplicates int, err error) {
	st := s.state

	existing := make(map[string]bool, len(st.Bookmarks))
	for _, b := range st.Bookmarks {
		existing[strings.ToLower(b.URL)] = true
	}

	bookmarks := append([]model.Bookmark{}, st.Bookmarks...)
	categories := st.Categories
	for _, b := range imported {
		key := strings.ToLower(b.URL)
		if existing[key] {
			duplicates++
			continue
		}
		existing[key] = true
		bookmarks = append(bookmarks, b)
		categories = ensureCategory(categories, b.Category)
		added++
	}

	if added == 0 {
		return 0, duplicates, nil
	}

	s.SetState(Partial{Bookmarks: &bookmarks, Categories: &categories})
	return added, duplicates, s.SaveToStorage()
}

// replaceBookmark returns a new slice with the matching record swapped out.
func replaceBookmark(bookmarks []model.Bookmark, updated model.Bookmark) []model.Bookmark {
	out := make([]model.Bookmark, len(bookmarks))
	copy(out, bookmarks)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			break
		}
	}
	return out
}

// ensureCategory returns categories with name included, sorted. The input
// slice is never mutated.
func ensureCategory(categories []string, name string) []string {
	if name == "" {
		return categories
	}
	for _, c := range categories {
		if c == name {
			return categories
		}
	}
	out := append(append([]string{}, categories...), name)
	sort.Strings(out)
	return out
}
