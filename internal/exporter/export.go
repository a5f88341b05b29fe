// Package exporter writes bookmarks out as Netscape HTML, CSV or JSON.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/launchdeck/launchdeck/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.<ext>
func DefaultExportPath(ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks as Netscape bookmark HTML, grouped into one
// folder per category. Uncategorized bookmarks land at the root.
func ExportHTML(bookmarks []model.Bookmark, categories []string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, category := range model.SortedCategories(categories) {
		var inCategory []model.Bookmark
		for _, bm := range bookmarks {
			if bm.Category == category {
				inCategory = append(inCategory, bm)
			}
		}
		if len(inCategory) == 0 {
			continue
		}

		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
		b.WriteString("    <DL><p>\n")
		for _, bm := range inCategory {
			writeBookmark(&b, bm, 2)
		}
		b.WriteString("    </DL><p>\n")
	}

	// Uncategorized bookmarks at the root level
	for _, bm := range bookmarks {
		if bm.Category == "" {
			writeBookmark(&b, bm, 1)
		}
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		prefix,
		html.EscapeString(bm.URL),
		bm.CreatedAt.Unix(),
		html.EscapeString(bm.Title),
	)
}

// ExportCSV writes bookmarks with the header Title,URL,Category,Tags,Created,Visits.
// Tags are semicolon-separated, timestamps RFC 3339.
func ExportCSV(w io.Writer, bookmarks []model.Bookmark) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Title", "URL", "Category", "Tags", "Created", "Visits"}); err != nil {
		return err
	}

	for _, b := range bookmarks {
		row := []string{
			b.Title,
			b.URL,
			b.Category,
			strings.Join(b.Tags, ";"),
			b.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(b.Visits),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportJSON writes bookmarks as an indented JSON array.
func ExportJSON(w io.Writer, bookmarks []model.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bookmarks)
}
