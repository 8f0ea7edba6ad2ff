// Package tui provides an interactive browser for comparison results.
// It follows the Elm architecture via Bubbletea: a category list per
// query on the left level, the category's member hits on the second.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// categoryItem is one selectable category of one query's report.
type categoryItem struct {
	query    string
	category domain.HitStatus
	hits     []*domain.Hit
}

func (i categoryItem) Title() string {
	return fmt.Sprintf("%s: %s (%d)", i.query, i.category, len(i.hits))
}

func (i categoryItem) Description() string {
	switch i.category {
	case domain.StatusEqual:
		return "identical in both searches"
	case domain.StatusSimilar:
		return "same record, drifted alignment"
	case domain.StatusLive:
		return "gone from the new search but still live"
	case domain.StatusReplaced:
		return "superseded by a newer record"
	case domain.StatusSuppressed:
		return "removed from the database"
	case domain.StatusNew:
		return "new since the old search"
	case domain.StatusStrange:
		return "new to the search yet older than it"
	default:
		return ""
	}
}

func (i categoryItem) FilterValue() string {
	return i.query + " " + string(i.category)
}

// keyMap holds the browse key bindings.
type keyMap struct {
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open category"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	hitStyle    = lipgloss.NewStyle().PaddingLeft(2)
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingLeft(2)
	footerStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
)

// Model is the browse TUI model. It implements tea.Model.
type Model struct {
	categories list.Model
	selected   *categoryItem
	offset     int
	height     int
}

// NewModel builds the browse model from comparison reports. Empty
// categories are left out; there is nothing to page through.
func NewModel(reports []*domain.Report) Model {
	var items []list.Item
	for _, report := range reports {
		for _, category := range domain.Categories() {
			old := report.Old.Bucket(category)
			new_ := report.New.Bucket(category)
			hits := append(append([]*domain.Hit{}, old...), new_...)
			if len(hits) == 0 {
				continue
			}
			items = append(items, categoryItem{
				query:    report.QueryName,
				category: category,
				hits:     hits,
			})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Hit categories"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select}
	}

	return Model{categories: l, height: 24}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.categories.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Back):
			if m.selected != nil {
				m.selected = nil
				m.offset = 0
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Select):
			if m.selected == nil {
				if item, ok := m.categories.SelectedItem().(categoryItem); ok {
					m.selected = &item
					m.offset = 0
				}
				return m, nil
			}
		}

		if m.selected != nil {
			switch msg.String() {
			case "down", "j":
				if m.offset < len(m.selected.hits)-m.pageSize() {
					m.offset++
				}
			case "up", "k":
				if m.offset > 0 {
					m.offset--
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.selected == nil {
		return m.categories.View()
	}
	return m.hitsView()
}

func (m Model) pageSize() int {
	size := m.height - 4
	if size < 1 {
		size = 1
	}
	return size
}

func (m Model) hitsView() string {
	item := m.selected
	out := titleStyle.Render(fmt.Sprintf("%s: %s hits %d-%d of %d",
		item.query, item.category,
		m.offset+1, min(m.offset+m.pageSize(), len(item.hits)), len(item.hits))) + "\n"
	out += headerStyle.Render("id            %ident   length   e-value      bit score") + "\n"

	end := min(m.offset+m.pageSize(), len(item.hits))
	for _, hit := range item.hits[m.offset:end] {
		id := "?"
		if num, ok := hit.CanonicalID(); ok {
			id = num
		} else if len(hit.IDs) > 0 {
			id = hit.IDs[0].String()
		}
		out += hitStyle.Render(fmt.Sprintf("%-12s  %6.2f   %6d   %-10.2g   %8.1f",
			id, hit.Alignment.PctIdentity, hit.Alignment.Length,
			hit.Alignment.EValue, hit.Alignment.BitScore)) + "\n"
	}

	out += footerStyle.Render("up/down scroll, esc back, q quit")
	return out
}
