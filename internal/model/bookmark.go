package model

import "time"

// BookmarkType classifies what a bookmark points at.
type BookmarkType string

const (
	TypeWebsite  BookmarkType = "website"
	TypeProgram  BookmarkType = "program"
	TypeProtocol BookmarkType = "protocol"
)

// DefaultCategory is assigned to bookmarks created without a category.
const DefaultCategory = "General"

// DefaultColor is the card color for bookmarks created without one.
const DefaultColor = "#ffffff"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	URL          string       `json:"url"`
	Category     string       `json:"category"`
	Tags         []string     `json:"tags"`
	Color        string       `json:"color"`
	Icon         string       `json:"icon"`
	Type         BookmarkType `json:"type"`
	ReminderDays *int         `json:"reminderDays"` // nil = no reminder
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Visits       int          `json:"visits"`
	LastVisited  *time.Time   `json:"lastVisited"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
// Zero fields pick up defaults in NewBookmark.
type NewBookmarkParams struct {
	Title        string
	URL          string
	Category     string
	Tags         []string
	Color        string
	Icon         string
	Type         BookmarkType
	ReminderDays *int
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
// It applies defaults but performs no validation; see the validate package.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	category := params.Category
	if category == "" {
		category = DefaultCategory
	}

	color := params.Color
	if color == "" {
		color = DefaultColor
	}

	typ := params.Type
	if typ == "" {
		typ = TypeWebsite
	}

	now := time.Now()
	return Bookmark{
		ID:           GenerateUUID(),
		Title:        params.Title,
		URL:          params.URL,
		Category:     category,
		Tags:         tags,
		Color:        color,
		Icon:         params.Icon,
		Type:         typ,
		ReminderDays: params.ReminderDays,
		CreatedAt:    now,
		UpdatedAt:    now,
		Visits:       0,
		LastVisited:  nil,
	}
}

// ReminderDue reports whether the bookmark's revisit reminder has elapsed.
// Bookmarks without a reminder are never due. Never-visited bookmarks are
// measured from their creation time.
func (b Bookmark) ReminderDue(now time.Time) bool {
	if b.ReminderDays == nil {
		return false
	}
	since := b.CreatedAt
	if b.LastVisited != nil {
		since = *b.LastVisited
	}
	return now.Sub(since) >= time.Duration(*b.ReminderDays)*24*time.Hour
}
