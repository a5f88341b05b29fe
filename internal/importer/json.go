package importer

import (
	"encoding/json"
	"io"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

// ParseJSON parses a JSON array of bookmark-shaped records. Records keep
// their IDs and timestamps where present; missing fields pick up defaults.
// Records that fail validation are skipped and counted.
func ParseJSON(r io.Reader) ([]model.Bookmark, int, error) {
	var raw []model.Bookmark
	if err := json.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, 0, err
	}

	var bookmarks []model.Bookmark
	skipped := 0

	for _, b := range raw {
		title, err := validate.Title(b.Title)
		if err != nil {
			skipped++
			continue
		}
		url, err := validate.URL(b.URL)
		if err != nil {
			skipped++
			continue
		}

		b.Title = title
		b.URL = url
		b.Category = validate.Category(b.Category)
		b.Tags = validate.Tags(b.Tags)
		if b.Color == "" {
			b.Color = model.DefaultColor
		}
		if b.Icon == "" {
			b.Icon = validate.FaviconURL(url)
		}
		if b.Type == "" {
			b.Type = validate.TypeForURL(url)
		}
		if b.ID == "" {
			b.ID = model.GenerateUUID()
		}

		bookmarks = append(bookmarks, b)
	}

	return bookmarks, skipped, nil
}
