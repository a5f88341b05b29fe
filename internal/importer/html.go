// Package importer converts external bookmark files into validated bookmark
// records. The core owns the records; the formats are owned here.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

// ParseHTML parses Netscape bookmark HTML. Folder names become categories;
// nested folders flatten to their innermost name. Entries that fail
// validation are skipped and counted.
func ParseHTML(r io.Reader) ([]model.Bookmark, int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, err
	}

	var bookmarks []model.Bookmark
	skipped := 0

	// Track the current folder nesting for category assignment.
	var folderStack []string
	var pendingFolder string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := textContent(n); name != "" {
					// Becomes the category once we enter its DL.
					pendingFolder = name
				}
				return

			case "a":
				href := attr(n, "href")
				if href == "" {
					return
				}

				title := textContent(n)
				if title == "" {
					title = href
				}

				url, err := validate.URL(href)
				if err != nil {
					skipped++
					return
				}
				title, err = validate.Title(title)
				if err != nil {
					skipped++
					return
				}

				category := ""
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				createdAt := time.Now()
				if addDate := attr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				bookmark := model.NewBookmark(model.NewBookmarkParams{
					Title:    title,
					URL:      url,
					Category: category,
					Icon:     validate.FaviconURL(url),
					Type:     validate.TypeForURL(url),
				})
				bookmark.CreatedAt = createdAt
				bookmark.UpdatedAt = createdAt
				bookmarks = append(bookmarks, bookmark)
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, skipped, nil
}

// textContent returns the text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) == key {
			return a.Val
		}
	}
	return ""
}
