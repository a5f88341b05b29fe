package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/search"
)

func testItems() []search.Item {
	bookmarks := []model.Bookmark{
		{ID: "b1", Title: "Go documentation", URL: "https://go.dev/doc"},
		{ID: "b2", Title: "News", URL: "https://example.com/news"},
	}
	apps := []model.Application{
		{ID: "a1", Name: "Terminal", Path: "/usr/bin/terminal"},
	}

	state := model.DefaultState()
	state.Bookmarks = bookmarks
	state.Applications = apps
	return search.Items(state)
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(p Picker, msg tea.Msg) Picker {
	next, _ := p.Update(msg)
	return next.(Picker)
}

func TestNew_EmptyQueryShowsEverything(t *testing.T) {
	p := New(testItems(), "")

	if len(p.results) != 3 {
		t.Errorf("expected all items visible, got %d", len(p.results))
	}
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestNew_InitialQueryFilters(t *testing.T) {
	p := New(testItems(), "term")

	if len(p.results) != 1 || p.results[0].Item.Title() != "Terminal" {
		t.Errorf("expected initial query applied, got %d results", len(p.results))
	}
}

func TestUpdate_TypingRefilters(t *testing.T) {
	p := New(testItems(), "")

	p = update(p, runes("go"))

	if len(p.results) != 1 || p.results[0].Item.Title() != "Go documentation" {
		t.Errorf("expected live filter, got %d results", len(p.results))
	}
}

func TestUpdate_CursorNavigation(t *testing.T) {
	p := New(testItems(), "")

	p = update(p, keyMsg(tea.KeyDown))
	if p.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", p.cursor)
	}

	p = update(p, keyMsg(tea.KeyCtrlN))
	if p.cursor != 2 {
		t.Errorf("expected cursor 2 after ctrl+n, got %d", p.cursor)
	}

	// Clamped at the end.
	p = update(p, keyMsg(tea.KeyDown))
	if p.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", p.cursor)
	}

	p = update(p, keyMsg(tea.KeyUp))
	if p.cursor != 1 {
		t.Errorf("expected cursor 1 after up, got %d", p.cursor)
	}

	p = update(p, keyMsg(tea.KeyCtrlP))
	p = update(p, keyMsg(tea.KeyUp))
	if p.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", p.cursor)
	}
}

func TestUpdate_CursorResetsWhenFilterShrinks(t *testing.T) {
	p := New(testItems(), "")
	p = update(p, keyMsg(tea.KeyDown))
	p = update(p, keyMsg(tea.KeyDown))

	p = update(p, runes("go"))

	if p.cursor != 0 {
		t.Errorf("expected cursor reset after refilter, got %d", p.cursor)
	}
}

func TestUpdate_EnterSelects(t *testing.T) {
	p := New(testItems(), "")

	p = update(p, keyMsg(tea.KeyEnter))

	if !p.Confirmed() {
		t.Error("expected confirmation after enter")
	}
	r, ok := p.Selected()
	if !ok || r.Item.Title() != "Go documentation" {
		t.Errorf("unexpected selection: %+v (ok=%v)", r, ok)
	}
}

func TestUpdate_EnterWithNoResultsDoesNothing(t *testing.T) {
	p := New(testItems(), "zzzzzz")

	p = update(p, keyMsg(tea.KeyEnter))

	if p.Confirmed() {
		t.Error("expected no confirmation without results")
	}
}

func TestUpdate_EscCancels(t *testing.T) {
	p := New(testItems(), "")

	p = update(p, keyMsg(tea.KeyEsc))

	if !p.Cancelled() {
		t.Error("expected cancellation after esc")
	}
	if p.Confirmed() {
		t.Error("cancelled picker must not confirm")
	}
}

func TestView_RendersResults(t *testing.T) {
	p := New(testItems(), "")

	view := p.View()

	for _, want := range []string{"Go documentation", "Terminal", "[url]", "[app]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := "https://example.com/a/very/long/path/that/keeps/going/and/going"
	got := truncate(long, 20)
	if len([]rune(got)) > 20 {
		t.Errorf("truncate too long: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}
