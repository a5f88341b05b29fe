// Package launcher talks to the operating system: discovering installed
// applications, launching them, and resolving their icons. The core only
// depends on the Launcher interface; everything OS-specific lives behind it.
package launcher

import (
	"context"
	"errors"
	"strings"

	"github.com/launchdeck/launchdeck/internal/model"
)

// ErrUnsupportedPlatform is returned where a capability has no
// implementation for the current OS. Callers treat it like any other
// external-capability failure: warn and carry on.
var ErrUnsupportedPlatform = errors.New("not supported on this platform")

// ScannedApp is one discovered application. Name and Path are always set;
// the remaining metadata is best-effort.
type ScannedApp struct {
	Name        string
	Path        string
	Category    string
	Description string
	Version     string
	IconPath    string
}

// Icon is the result of icon extraction for an application.
type Icon struct {
	IconURL  string
	IconPath string
}

// Launcher is the OS capability contract consumed by the core.
type Launcher interface {
	ScanApplications(ctx context.Context) ([]ScannedApp, error)
	Launch(ctx context.Context, path string) error
	OpenURL(ctx context.Context, url string) error
	ExtractIcon(ctx context.Context, path string) (*Icon, error)
}

// Records converts scan results into application records ready for
// reconciliation. IDs are left empty; the merge assigns identity.
func Records(scanned []ScannedApp) []model.Application {
	records := make([]model.Application, 0, len(scanned))
	for _, s := range scanned {
		category := s.Category
		if category == "" {
			category = inferCategory(s.Name)
		}
		records = append(records, model.Application{
			Name:          s.Name,
			Path:          s.Path,
			Category:      category,
			Description:   s.Description,
			Version:       s.Version,
			LocalIconPath: s.IconPath,
		})
	}
	return records
}

// categoryKeywords maps name fragments to a display category, used when the
// OS provides no classification.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"browser", "Internet"},
	{"chrome", "Internet"},
	{"firefox", "Internet"},
	{"mail", "Internet"},
	{"code", "Development"},
	{"studio", "Development"},
	{"terminal", "Development"},
	{"player", "Multimedia"},
	{"music", "Multimedia"},
	{"video", "Multimedia"},
	{"photo", "Graphics"},
	{"image", "Graphics"},
	{"office", "Office"},
	{"word", "Office"},
	{"excel", "Office"},
	{"game", "Games"},
	{"settings", "System"},
	{"monitor", "System"},
}

func inferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, k := range categoryKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.category
		}
	}
	return "Other"
}
