package search

import (
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/sahilm/fuzzy"
)

// Kind says what a search item points at.
type Kind int

const (
	KindBookmark Kind = iota
	KindApplication
)

// Item is one searchable entry, either a bookmark or an application.
type Item struct {
	Kind        Kind
	Bookmark    *model.Bookmark
	Application *model.Application
}

// Title returns the display title used for matching.
func (it Item) Title() string {
	if it.Kind == KindBookmark {
		return it.Bookmark.Title
	}
	return it.Application.Name
}

// Target returns what launching the item means: a URL or an OS path.
func (it Item) Target() string {
	if it.Kind == KindBookmark {
		return it.Bookmark.URL
	}
	return it.Application.Path
}

// Result represents a fuzzy search match.
type Result struct {
	Item           Item
	MatchedIndexes []int
	Score          int
}

// itemTitles implements fuzzy.Source for an item slice.
type itemTitles []Item

func (it itemTitles) String(i int) string {
	return it[i].Title()
}

func (it itemTitles) Len() int {
	return len(it)
}

// Items builds the combined searchable set from state.
func Items(state model.State) []Item {
	items := make([]Item, 0, len(state.Bookmarks)+len(state.Applications))
	for i := range state.Bookmarks {
		items = append(items, Item{Kind: KindBookmark, Bookmark: &state.Bookmarks[i]})
	}
	for i := range state.Applications {
		items = append(items, Item{Kind: KindApplication, Application: &state.Applications[i]})
	}
	return items
}

// Find searches items by title using fuzzy matching.
// Returns results sorted by match score (best first).
func Find(items []Item, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, itemTitles(items))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Item:           items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
