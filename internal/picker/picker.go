// Package picker is the thin interactive controller: it renders search
// results and turns key presses into a selection. All business logic stays
// in the store, pipeline and search packages.
package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/launchdeck/launchdeck/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// maxVisible caps the rendered result list.
const maxVisible = 15

// Picker is a TUI for filtering and selecting a bookmark or application.
type Picker struct {
	items     []search.Item
	input     textinput.Model
	results   []search.Result
	cursor    int
	selected  bool
	cancelled bool
	copied    bool
	width     int
	height    int
}

// New creates a Picker over the given items with an optional initial query.
func New(items []search.Item, query string) Picker {
	input := textinput.New()
	input.Placeholder = "Search bookmarks and apps..."
	input.SetValue(query)
	input.Focus()

	p := Picker{
		items:  items,
		input:  input,
		width:  80,
		height: 24,
	}
	p.refilter()
	return p
}

// refilter recomputes the visible results from the current query.
func (p *Picker) refilter() {
	query := p.input.Value()
	if query == "" {
		results := make([]search.Result, 0, len(p.items))
		for _, it := range p.items {
			results = append(results, search.Result{Item: it})
		}
		p.results = results
	} else {
		p.results = search.Find(p.items, query)
	}
	if p.cursor >= len(p.results) {
		p.cursor = 0
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) > 0 {
				p.selected = true
				return p, tea.Quit
			}
			return p, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case tea.KeyCtrlY:
			if r, ok := p.Selected(); ok {
				if err := clipboard.WriteAll(r.Item.Target()); err == nil {
					p.copied = true
				}
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.copied = false
		p.refilter()
	}
	return p, cmd
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("launchdeck (%d results)", len(p.results))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	visible := p.results
	if len(visible) > maxVisible {
		visible = visible[:maxVisible]
	}

	for i, r := range visible {
		kind := "url"
		if r.Item.Kind == search.KindApplication {
			kind = "app"
		}

		line := fmt.Sprintf("%s %s",
			kindStyle.Render("["+kind+"]"),
			r.Item.Title(),
		)
		if i == p.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = normalStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("  ")
		b.WriteString(targetStyle.Render(truncate(r.Item.Target(), p.width-40)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := "enter launch · ctrl+y copy · esc quit"
	if p.copied {
		status = "copied to clipboard"
	}
	b.WriteString(statusStyle.Render(status))

	return b.String()
}

// Selected returns the highlighted result.
func (p Picker) Selected() (search.Result, bool) {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return search.Result{}, false
	}
	return p.results[p.cursor], true
}

// Confirmed reports whether the user accepted the highlighted result.
func (p Picker) Confirmed() bool {
	return p.selected && !p.cancelled
}

// Cancelled reports whether the user aborted the picker.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
