package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

// csvHeader is the expected column layout for CSV import and export.
var csvHeader = []string{"Title", "URL", "Category", "Tags", "Created", "Visits"}

// ParseCSV parses a bookmark CSV with the header
// Title,URL,Category,Tags,Created,Visits. Tags are semicolon-separated.
// Rows that fail validation are skipped and counted.
func ParseCSV(r io.Reader) ([]model.Bookmark, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(header[0], "Title") || !strings.EqualFold(header[1], "URL") {
		return nil, 0, fmt.Errorf("unexpected csv header %v, want %v", header, csvHeader)
	}

	var bookmarks []model.Bookmark
	skipped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		title, err := validate.Title(field(row, 0))
		if err != nil {
			skipped++
			continue
		}
		url, err := validate.URL(field(row, 1))
		if err != nil {
			skipped++
			continue
		}

		var tags []string
		if raw := field(row, 3); raw != "" {
			tags = strings.Split(raw, ";")
		}

		bookmark := model.NewBookmark(model.NewBookmarkParams{
			Title:    title,
			URL:      url,
			Category: validate.Category(field(row, 2)),
			Tags:     validate.Tags(tags),
			Icon:     validate.FaviconURL(url),
			Type:     validate.TypeForURL(url),
		})

		if raw := field(row, 4); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				bookmark.CreatedAt = t
				bookmark.UpdatedAt = t
			}
		}
		if raw := field(row, 5); raw != "" {
			if visits, err := strconv.Atoi(raw); err == nil && visits >= 0 {
				bookmark.Visits = visits
			}
		}

		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, skipped, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
