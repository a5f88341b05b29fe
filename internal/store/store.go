// Package store holds the canonical in-memory application state and tells
// interested parties exactly when the values they care about change.
//
// The store is single-threaded by design: all mutation runs synchronously on
// the caller's goroutine and notifications are delivered before SetState
// returns. Persistence is the only asynchronous boundary and is isolated
// behind LoadFromStorage/SaveToStorage.
package store

import (
	"github.com/launchdeck/launchdeck/internal/logger"
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/reconcile"
	"github.com/launchdeck/launchdeck/internal/storage"
)

// Key identifies a top-level state field for subscriptions.
type Key string

const (
	KeyBookmarks         Key = "bookmarks"
	KeyCategories        Key = "categories"
	KeyApplications      Key = "applications"
	KeyGridColumns       Key = "gridColumns"
	KeyIsDarkMode        Key = "isDarkMode"
	KeyAnimationsEnabled Key = "animationsEnabled"
	KeySearchTerm        Key = "searchTerm"
	KeyCurrentCategory   Key = "currentCategory"
	KeySearchCategory    Key = "searchCategory"
	KeySearchTags        Key = "searchTags"
	KeySortBy            Key = "sortBy"
	KeySortOrder         Key = "sortOrder"
	KeyViewMode          Key = "viewMode"
	KeyCurrentView       Key = "currentView"
)

// Callback observes one state key. It receives the new and previous value.
type Callback func(newValue, oldValue any)

// Handler observes one dispatched event.
type Handler func(payload any)

type subscriber struct {
	cb Callback
}

type handler struct {
	fn Handler
}

// Store is the single source of truth for application state.
type Store struct {
	state    model.State
	subs     map[Key][]*subscriber
	handlers map[string][]*handler

	gateway storage.Storage
	matcher *reconcile.Matcher
	log     logger.Logger

	launcherMeta storage.LauncherSettings
}

// New constructs a Store with default state. The storage gateway may be nil
// for tests; persistence then becomes a no-op.
func New(gateway storage.Storage, matcher *reconcile.Matcher, log logger.Logger) *Store {
	if matcher == nil {
		matcher = reconcile.NewMatcher(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		state:    model.DefaultState(),
		subs:     make(map[Key][]*subscriber),
		handlers: make(map[string][]*handler),
		gateway:  gateway,
		matcher:  matcher,
		log:      log,
		launcherMeta: storage.LauncherSettings{
			AppCategories: map[string]string{},
		},
	}
}

// GetState returns a snapshot of the current state. Callers must treat the
// contained collections as read-only; mutations go through SetState or the
// command methods.
func (s *Store) GetState() model.State {
	return s.state
}

// Partial is a shallow patch for SetState. nil fields are untouched and
// never trigger notification.
type Partial struct {
	Bookmarks         *[]model.Bookmark
	Categories        *[]string
	Applications      *[]model.Application
	GridColumns       *int
	IsDarkMode        *bool
	AnimationsEnabled *bool
	SearchTerm        *string
	CurrentCategory   *string
	SearchCategory    *string
	SearchTags        *[]string
	SortBy            *string
	SortOrder         *string
	ViewMode          *string
	CurrentView       *string
}

type change struct {
	key      Key
	newValue any
	oldValue any
}

// SetState shallow-merges the partial into the current state. Subscribers
// for every key whose value actually changed are invoked synchronously, in
// registration order, before SetState returns. Collections compare by slice
// identity: the copy-on-write convention means a replaced collection is a
// different slice.
func (s *Store) SetState(p Partial) {
	old := s.state
	next := old
	var changes []change

	if p.Bookmarks != nil && !sameSlice(old.Bookmarks, *p.Bookmarks) {
		next.Bookmarks = *p.Bookmarks
		changes = append(changes, change{KeyBookmarks, *p.Bookmarks, old.Bookmarks})
	}
	if p.Categories != nil && !sameSlice(old.Categories, *p.Categories) {
		next.Categories = *p.Categories
		changes = append(changes, change{KeyCategories, *p.Categories, old.Categories})
	}
	if p.Applications != nil && !sameSlice(old.Applications, *p.Applications) {
		next.Applications = *p.Applications
		changes = append(changes, change{KeyApplications, *p.Applications, old.Applications})
	}
	if p.GridColumns != nil && *p.GridColumns != old.GridColumns {
		next.GridColumns = *p.GridColumns
		changes = append(changes, change{KeyGridColumns, *p.GridColumns, old.GridColumns})
	}
	if p.IsDarkMode != nil && *p.IsDarkMode != old.IsDarkMode {
		next.IsDarkMode = *p.IsDarkMode
		changes = append(changes, change{KeyIsDarkMode, *p.IsDarkMode, old.IsDarkMode})
	}
	if p.AnimationsEnabled != nil && *p.AnimationsEnabled != old.AnimationsEnabled {
		next.AnimationsEnabled = *p.AnimationsEnabled
		changes = append(changes, change{KeyAnimationsEnabled, *p.AnimationsEnabled, old.AnimationsEnabled})
	}
	if p.SearchTerm != nil && *p.SearchTerm != old.SearchTerm {
		next.SearchTerm = *p.SearchTerm
		changes = append(changes, change{KeySearchTerm, *p.SearchTerm, old.SearchTerm})
	}
	if p.CurrentCategory != nil && *p.CurrentCategory != old.CurrentCategory {
		next.CurrentCategory = *p.CurrentCategory
		changes = append(changes, change{KeyCurrentCategory, *p.CurrentCategory, old.CurrentCategory})
	}
	if p.SearchCategory != nil && *p.SearchCategory != old.SearchCategory {
		next.SearchCategory = *p.SearchCategory
		changes = append(changes, change{KeySearchCategory, *p.SearchCategory, old.SearchCategory})
	}
	if p.SearchTags != nil && !sameSlice(old.SearchTags, *p.SearchTags) {
		next.SearchTags = *p.SearchTags
		changes = append(changes, change{KeySearchTags, *p.SearchTags, old.SearchTags})
	}
	if p.SortBy != nil && *p.SortBy != old.SortBy {
		next.SortBy = *p.SortBy
		changes = append(changes, change{KeySortBy, *p.SortBy, old.SortBy})
	}
	if p.SortOrder != nil && *p.SortOrder != old.SortOrder {
		next.SortOrder = *p.SortOrder
		changes = append(changes, change{KeySortOrder, *p.SortOrder, old.SortOrder})
	}
	if p.ViewMode != nil && *p.ViewMode != old.ViewMode {
		next.ViewMode = *p.ViewMode
		changes = append(changes, change{KeyViewMode, *p.ViewMode, old.ViewMode})
	}
	if p.CurrentView != nil && *p.CurrentView != old.CurrentView {
		next.CurrentView = *p.CurrentView
		changes = append(changes, change{KeyCurrentView, *p.CurrentView, old.CurrentView})
	}

	s.state = next

	for _, c := range changes {
		for _, sub := range s.subs[c.key] {
			s.invoke(c.key, sub.cb, c.newValue, c.oldValue)
		}
	}
}

// invoke runs one subscriber callback. A panicking callback is logged and
// contained; remaining subscribers still run.
func (s *Store) invoke(key Key, cb Callback, newValue, oldValue any) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("subscriber panicked",
				logger.String("key", string(key)),
				logger.Any("panic", r),
			)
		}
	}()
	cb(newValue, oldValue)
}

// Subscribe registers a per-key observer. The returned function deregisters
// exactly that observer.
func (s *Store) Subscribe(key Key, cb Callback) func() {
	sub := &subscriber{cb: cb}
	s.subs[key] = append(s.subs[key], sub)
	return func() {
		list := s.subs[key]
		for i, candidate := range list {
			if candidate == sub {
				s.subs[key] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch fires an imperative event to all handlers registered with On.
// Events are for cross-cutting signals not modeled as state, e.g. "open the
// edit form for bookmark X". A panicking handler is contained.
func (s *Store) Dispatch(event string, payload any) {
	for _, h := range s.handlers[event] {
		s.invokeHandler(event, h.fn, payload)
	}
}

func (s *Store) invokeHandler(event string, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("event handler panicked",
				logger.String("event", event),
				logger.Any("panic", r),
			)
		}
	}()
	fn(payload)
}

// On registers an event handler. The returned function deregisters it.
func (s *Store) On(event string, fn Handler) func() {
	h := &handler{fn: fn}
	s.handlers[event] = append(s.handlers[event], h)
	return func() {
		list := s.handlers[event]
		for i, candidate := range list {
			if candidate == h {
				s.handlers[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// sameSlice reports slice identity: same backing array, same length. Two
// empty slices count as identical; replacing an empty collection with
// another empty one is not a change worth announcing.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
