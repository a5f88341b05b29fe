// Package validate holds the pure validation and normalization rules applied
// to user input before it reaches the state store.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/launchdeck/launchdeck/internal/model"
)

// Error describes a rejected input value. The triggering command leaves
// state unchanged.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newError(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Title trims the title and rejects empty values.
func Title(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", newError("title", "must not be empty")
	}
	return title, nil
}

// URL normalizes a raw URL string into an absolute URL. A missing scheme is
// inferred as https. Web URLs must carry a host.
func URL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", newError("url", "must not be empty")
	}

	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "mailto:") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", newError("url", err.Error())
	}
	if parsed.Scheme == "" {
		return "", newError("url", "missing scheme")
	}
	if (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host == "" {
		return "", newError("url", "missing host")
	}

	return parsed.String(), nil
}

// Category trims the category and falls back to the default for empty input.
func Category(raw string) string {
	category := strings.TrimSpace(raw)
	if category == "" {
		return model.DefaultCategory
	}
	return category
}

// Tags trims all tags, drops empties and case-insensitive duplicates, and
// keeps the first-seen order for display.
func Tags(raw []string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	return tags
}

// Color validates a hex color string. Empty input falls back to the default.
func Color(raw string) (string, error) {
	color := strings.TrimSpace(raw)
	if color == "" {
		return model.DefaultColor, nil
	}
	if !colorPattern.MatchString(color) {
		return "", newError("color", "must be a hex color like #ffffff")
	}
	return strings.ToLower(color), nil
}

// ReminderDays validates an optional revisit reminder. nil means no reminder.
func ReminderDays(days *int) (*int, error) {
	if days == nil {
		return nil, nil
	}
	if *days < 1 || *days > 365 {
		return nil, newError("reminderDays", "must be between 1 and 365")
	}
	d := *days
	return &d, nil
}

// TypeForURL infers the bookmark type from the URL scheme.
func TypeForURL(normalized string) model.BookmarkType {
	parsed, err := url.Parse(normalized)
	if err != nil {
		return model.TypeWebsite
	}
	switch parsed.Scheme {
	case "http", "https":
		return model.TypeWebsite
	case "file":
		return model.TypeProgram
	default:
		return model.TypeProtocol
	}
}
