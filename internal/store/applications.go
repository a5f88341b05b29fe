package store

import (
	"strings"
	"time"

	"github.com/launchdeck/launchdeck/internal/logger"
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/validate"
)

// AddManualApplication registers an application the user entered directly
// rather than one found by a scan.
func (s *Store) AddManualApplication(params model.NewApplicationParams) (model.Application, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Application{}, &validate.Error{Field: "name", Reason: "must not be empty"}
	}
	path := strings.TrimSpace(params.Path)
	if path == "" {
		return model.Application{}, &validate.Error{Field: "path", Reason: "must not be empty"}
	}

	app := model.NewApplication(model.NewApplicationParams{
		Name:     name,
		Path:     path,
		Category: strings.TrimSpace(params.Category),
		IsManual: true,
	})

	st := s.state
	apps := append(append([]model.Application{}, st.Applications...), app)
	s.SetState(Partial{Applications: &apps})
	return app, s.SaveToStorage()
}

// RemoveApplication deletes an application record.
func (s *Store) RemoveApplication(id string) error {
	st := s.state
	if st.ApplicationByID(id) == nil {
		return ErrApplicationNotFound
	}

	apps := make([]model.Application, 0, len(st.Applications)-1)
	for _, a := range st.Applications {
		if a.ID != id {
			apps = append(apps, a)
		}
	}

	s.SetState(Partial{Applications: &apps})
	return s.SaveToStorage()
}

// ToggleFavorite flips the user-owned favorite flag on an application.
func (s *Store) ToggleFavorite(id string) (model.Application, error) {
	return s.updateApplication(id, func(a *model.Application) {
		a.Favorite = !a.Favorite
	})
}

// RecordLaunch bumps the usage counter and stamps lastUsed. Called when an
// application is launched.
func (s *Store) RecordLaunch(id string) (model.Application, error) {
	now := time.Now()
	return s.updateApplication(id, func(a *model.Application) {
		a.UsageCount++
		a.LastUsed = &now
	})
}

// SetApplicationCategory assigns a user-chosen category to an application.
// The choice is remembered by name so it survives rescans that replace the
// record's metadata.
func (s *Store) SetApplicationCategory(id, category string) (model.Application, error) {
	category = strings.TrimSpace(category)
	st := s.state
	if existing := st.ApplicationByID(id); existing != nil {
		if s.launcherMeta.AppCategories == nil {
			s.launcherMeta.AppCategories = map[string]string{}
		}
		s.launcherMeta.AppCategories[existing.Name] = category
	}
	return s.updateApplication(id, func(a *model.Application) {
		a.Category = category
	})
}

// ApplyScan reconciles freshly scanned applications with the known list.
// Reconciliation runs against the applications value at apply time, so user
// edits made while the scan was running win through the merge's max/non-null
// rules. A stale scan applied after a newer one cannot regress user data
// for the same reason.
func (s *Store) ApplyScan(scanned []model.Application) []model.Application {
	st := s.state
	merged := s.matcher.Merge(st.Applications, scanned)

	// Re-apply remembered per-name category choices over scanned metadata.
	if len(s.launcherMeta.AppCategories) > 0 {
		for i := range merged {
			if cat := s.rememberedCategory(merged[i].Name); cat != "" {
				merged[i].Category = cat
			}
		}
	}

	now := time.Now()
	s.launcherMeta.LastScanTime = &now

	s.SetState(Partial{Applications: &merged})
	if err := s.SaveToStorage(); err != nil {
		s.log.Warn("failed to persist scan results", logger.Err(err))
	}
	s.log.Info("applied application scan",
		logger.Int("scanned", len(scanned)),
		logger.Int("total", len(merged)),
	)
	return merged
}

// SeedCategoryRules merges rules-file category assignments into the
// remembered per-name choices. Choices the user already made win over the
// rules file.
func (s *Store) SeedCategoryRules(rules map[string]string) {
	if len(rules) == 0 {
		return
	}
	if s.launcherMeta.AppCategories == nil {
		s.launcherMeta.AppCategories = map[string]string{}
	}
	for name, category := range rules {
		if _, ok := s.launcherMeta.AppCategories[name]; !ok && category != "" {
			s.launcherMeta.AppCategories[name] = category
		}
	}
}

// rememberedCategory looks up a user-chosen category for a name. A rescan
// may have replaced the display name with an alias of itself, so the lookup
// falls back to name equivalence.
func (s *Store) rememberedCategory(name string) string {
	if cat, ok := s.launcherMeta.AppCategories[name]; ok {
		return cat
	}
	for known, cat := range s.launcherMeta.AppCategories {
		if cat != "" && s.matcher.Equivalent(known, name) {
			return cat
		}
	}
	return ""
}

// SetApplicationIcon records freshly resolved icon provenance. Empty values
// leave the existing fields alone so a failed extraction never clears an
// icon that worked before.
func (s *Store) SetApplicationIcon(id, iconURL, iconPath string) (model.Application, error) {
	return s.updateApplication(id, func(a *model.Application) {
		if iconURL != "" {
			a.IconURL = iconURL
		}
		if iconPath != "" {
			a.LocalIconPath = iconPath
		}
	})
}

// updateApplication applies fn to a copy of the matching record and swaps
// the new collection into state.
func (s *Store) updateApplication(id string, fn func(*model.Application)) (model.Application, error) {
	st := s.state
	existing := st.ApplicationByID(id)
	if existing == nil {
		return model.Application{}, ErrApplicationNotFound
	}

	updated := *existing
	fn(&updated)

	apps := make([]model.Application, len(st.Applications))
	copy(apps, st.Applications)
	for i := range apps {
		if apps[i].ID == id {
			apps[i] = updated
			break
		}
	}

	s.SetState(Partial{Applications: &apps})
	return updated, s.SaveToStorage()
}
