// Package reconcile merges a freshly scanned application list with the
// previously known one. Matching is three-tiered (path, name, fuzzy name)
// and user-owned fields survive the merge: favorites are kept, usage counts
// never regress, last-used takes the known value when both sides have one.
package reconcile

import (
	"strings"

	"github.com/launchdeck/launchdeck/internal/model"
)

// Matcher decides whether two application records describe the same
// real-world application.
type Matcher struct {
	// groups maps a normalized name to its alias group key.
	groups map[string]string
}

// NewMatcher builds a Matcher from the built-in alias table plus optional
// extra alias groups (key -> aliases), e.g. loaded from the user's rules file.
func NewMatcher(extra map[string][]string) *Matcher {
	groups := make(map[string]string)
	add := func(key string, aliases []string) {
		key = Normalize(key)
		if key == "" {
			return
		}
		groups[key] = key
		for _, a := range aliases {
			if n := Normalize(a); n != "" {
				groups[n] = key
			}
		}
	}
	for key, aliases := range builtinAliases {
		add(key, aliases)
	}
	for key, aliases := range extra {
		add(key, aliases)
	}
	return &Matcher{groups: groups}
}

// Normalize lowercases a name and strips everything non-alphanumeric, so
// "Visual Studio Code" and "visual-studio.code" compare equal.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equivalent reports whether two display names refer to the same application:
// equal normalized forms, or membership in the same alias group.
func (m *Matcher) Equivalent(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	ga, oka := m.groups[na]
	gb, okb := m.groups[nb]
	return oka && okb && ga == gb
}

// match finds the first candidate matching app, trying each tier across the
// whole list before falling through to the next: exact path, then
// case-insensitive name, then fuzzy name equivalence. Returns -1 if nothing
// matches.
func (m *Matcher) match(app model.Application, candidates []model.Application) int {
	if app.Path != "" {
		for i := range candidates {
			if candidates[i].Path == app.Path {
				return i
			}
		}
	}
	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, app.Name) && app.Name != "" {
			return i
		}
	}
	for i := range candidates {
		if m.Equivalent(candidates[i].Name, app.Name) {
			return i
		}
	}
	return -1
}

// Merge reconciles the previously known applications with a fresh scan.
//
// Known applications that match a scanned record take the scanned record's
// fresh fields (name, path, category, icons, version, description) but keep
// their identity and user-owned fields. Known applications the scan did not
// find are kept unchanged; a transient scan failure must not destroy user
// data. Scanned applications that match nothing already merged are appended
// as new records. The result always contains at least len(known) entries and
// never two entries for the same application.
func (m *Matcher) Merge(known, scanned []model.Application) []model.Application {
	merged := make([]model.Application, 0, len(known)+len(scanned))

	for _, e := range known {
		idx := m.match(e, scanned)
		if idx < 0 {
			merged = append(merged, e)
			continue
		}
		merged = append(merged, mergeRecord(e, scanned[idx]))
	}

	for _, s := range scanned {
		if m.match(s, merged) >= 0 {
			continue
		}
		if s.ID == "" {
			s.ID = model.GenerateUUID()
		}
		merged = append(merged, s)
	}

	return merged
}

// mergeRecord combines a known record with its scanned counterpart. Fresh
// metadata comes from the scan; identity and user-owned fields from the
// known record. Scanned records rarely carry usage history, so lastUsed
// prefers the known value.
func mergeRecord(known, scanned model.Application) model.Application {
	rec := scanned
	rec.ID = known.ID
	rec.Favorite = known.Favorite
	rec.IsManual = known.IsManual
	if known.UsageCount > scanned.UsageCount {
		rec.UsageCount = known.UsageCount
	}
	if known.LastUsed != nil {
		rec.LastUsed = known.LastUsed
	}
	return rec
}
