package store

import (
	"errors"
	"testing"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/storage"
)

// fakeGateway records saves and can be told to fail.
type fakeGateway struct {
	saved    *storage.PersistedState
	saves    int
	saveErr  error
	loadErr  error
	loadWith *storage.PersistedState
}

func (f *fakeGateway) Load() (*storage.PersistedState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.loadWith != nil {
		return f.loadWith, nil
	}
	return storage.DefaultPersisted(), nil
}

func (f *fakeGateway) Save(state *storage.PersistedState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = state
	f.saves++
	return nil
}

func newTestStore() *Store {
	return New(nil, nil, nil)
}

func TestSetState_NotifiesOnlyChangedKeys(t *testing.T) {
	s := newTestStore()

	termCalls := 0
	modeCalls := 0
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) { termCalls++ })
	s.Subscribe(KeyViewMode, func(newValue, oldValue any) { modeCalls++ })

	term := "git"
	s.SetState(Partial{SearchTerm: &term})

	if termCalls != 1 {
		t.Errorf("expected 1 searchTerm notification, got %d", termCalls)
	}
	if modeCalls != 0 {
		t.Errorf("expected 0 viewMode notifications, got %d", modeCalls)
	}

	// Setting the same value again must not notify.
	s.SetState(Partial{SearchTerm: &term})
	if termCalls != 1 {
		t.Errorf("expected no notification for unchanged value, got %d calls", termCalls)
	}
}

func TestSetState_PassesOldAndNewValues(t *testing.T) {
	s := newTestStore()

	var gotNew, gotOld any
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		gotNew = newValue
		gotOld = oldValue
	})

	term := "docs"
	s.SetState(Partial{SearchTerm: &term})

	if gotNew != "docs" {
		t.Errorf("expected new value %q, got %v", "docs", gotNew)
	}
	if gotOld != "" {
		t.Errorf("expected old value %q, got %v", "", gotOld)
	}
}

func TestSetState_StateVisibleDuringNotification(t *testing.T) {
	s := newTestStore()

	var seen string
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		seen = s.GetState().SearchTerm
	})

	term := "ready"
	s.SetState(Partial{SearchTerm: &term})

	if seen != "ready" {
		t.Errorf("expected state to reflect new value during notification, saw %q", seen)
	}
}

func TestSetState_CollectionIdentityChange(t *testing.T) {
	s := newTestStore()

	calls := 0
	s.Subscribe(KeyBookmarks, func(newValue, oldValue any) { calls++ })

	bookmarks := []model.Bookmark{{ID: "b1", Title: "One"}}
	s.SetState(Partial{Bookmarks: &bookmarks})
	if calls != 1 {
		t.Fatalf("expected 1 notification for new collection, got %d", calls)
	}

	// Re-setting the identical slice is not a change.
	s.SetState(Partial{Bookmarks: &bookmarks})
	if calls != 1 {
		t.Errorf("expected no notification for identical slice, got %d calls", calls)
	}

	// A fresh copy with equal contents is a change by identity.
	replaced := append([]model.Bookmark{}, bookmarks...)
	s.SetState(Partial{Bookmarks: &replaced})
	if calls != 2 {
		t.Errorf("expected notification for replaced collection, got %d calls", calls)
	}
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	s := newTestStore()

	var order []string
	unsubFirst := s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		order = append(order, "first")
	})
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		order = append(order, "second")
	})

	term := "a"
	s.SetState(Partial{SearchTerm: &term})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected registration-order delivery, got %v", order)
	}

	unsubFirst()
	order = nil

	term = "b"
	s.SetState(Partial{SearchTerm: &term})

	if len(order) != 1 || order[0] != "second" {
		t.Errorf("expected only second subscriber after unsubscribe, got %v", order)
	}
}

func TestSubscriberPanicDoesNotStopFanout(t *testing.T) {
	s := newTestStore()

	secondCalls := 0
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		panic("broken subscriber")
	})
	s.Subscribe(KeySearchTerm, func(newValue, oldValue any) {
		secondCalls++
	})

	term := "x"
	s.SetState(Partial{SearchTerm: &term})

	if secondCalls != 1 {
		t.Errorf("expected second subscriber to run exactly once, got %d", secondCalls)
	}
}

func TestDispatch_DeliversToHandlers(t *testing.T) {
	s := newTestStore()

	var got any
	unsub := s.On("edit-bookmark", func(payload any) { got = payload })

	s.Dispatch("edit-bookmark", "b42")
	if got != "b42" {
		t.Errorf("expected payload b42, got %v", got)
	}

	s.Dispatch("other-event", "ignored")
	if got != "b42" {
		t.Errorf("unrelated event reached handler: %v", got)
	}

	unsub()
	s.Dispatch("edit-bookmark", "b43")
	if got != "b42" {
		t.Errorf("expected no delivery after unsubscribe, got %v", got)
	}
}

func TestDispatch_HandlerPanicContained(t *testing.T) {
	s := newTestStore()

	calls := 0
	s.On("boom", func(payload any) { panic("bad handler") })
	s.On("boom", func(payload any) { calls++ })

	s.Dispatch("boom", nil)

	if calls != 1 {
		t.Errorf("expected second handler to run, got %d calls", calls)
	}
}

func TestLoadFromStorage_ErrorKeepsDefaults(t *testing.T) {
	gateway := &fakeGateway{loadErr: errors.New("corrupt blob")}
	s := New(gateway, nil, nil)

	s.LoadFromStorage()

	st := s.GetState()
	if st.SortBy != model.SortNewest || st.SortOrder != model.SortDesc {
		t.Errorf("expected default sort after failed load, got %s/%s", st.SortBy, st.SortOrder)
	}
	if len(st.Bookmarks) != 0 {
		t.Errorf("expected no bookmarks after failed load, got %d", len(st.Bookmarks))
	}
}

func TestLoadFromStorage_HydratesState(t *testing.T) {
	persisted := storage.DefaultPersisted()
	persisted.Bookmarks = []model.Bookmark{
		{ID: "b1", Title: "Docs", URL: "https://example.com", Category: "Work"},
	}
	persisted.IsDarkMode = true
	persisted.GridColumns = 6
	persisted.Launcher.Applications = []model.Application{
		{ID: "a1", Name: "Editor", Path: "/usr/bin/editor"},
	}
	persisted.Launcher.Favorites = []string{"a1"}

	gateway := &fakeGateway{loadWith: persisted}
	s := New(gateway, nil, nil)
	s.LoadFromStorage()

	st := s.GetState()
	if len(st.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(st.Bookmarks))
	}
	if !st.IsDarkMode {
		t.Error("expected dark mode to survive hydration")
	}
	if st.GridColumns != 6 {
		t.Errorf("expected 6 grid columns, got %d", st.GridColumns)
	}
	// Categories referenced by bookmarks join the set on load.
	if !st.HasCategory("Work") {
		t.Errorf("expected category invariant restored on load, categories: %v", st.Categories)
	}
	// Favorite ID lists from older state files are applied to the records.
	if len(st.Applications) != 1 || !st.Applications[0].Favorite {
		t.Error("expected favorites list applied to application records")
	}
}

func TestSaveToStorage_WritesDurableSubsetOnly(t *testing.T) {
	gateway := &fakeGateway{}
	s := New(gateway, nil, nil)

	term := "transient"
	s.SetState(Partial{SearchTerm: &term})

	if _, err := s.AddBookmark(model.NewBookmarkParams{Title: "Example", URL: "example.com"}); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	if gateway.saved == nil {
		t.Fatal("expected a save after mutating command")
	}
	if len(gateway.saved.Bookmarks) != 1 {
		t.Errorf("expected 1 bookmark persisted, got %d", len(gateway.saved.Bookmarks))
	}
}

func TestSaveToStorage_WriteErrorSurfaced(t *testing.T) {
	gateway := &fakeGateway{saveErr: errors.New("quota exceeded")}
	s := New(gateway, nil, nil)

	_, err := s.AddBookmark(model.NewBookmarkParams{Title: "Example", URL: "example.com"})
	if err == nil {
		t.Fatal("expected write error to surface to the caller")
	}

	// The in-memory mutation itself still happened.
	if len(s.GetState().Bookmarks) != 1 {
		t.Errorf("expected bookmark in memory despite failed save, got %d", len(s.GetState().Bookmarks))
	}
}
