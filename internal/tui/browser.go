package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Column describes one browser column.
type Column struct {
	Title string
	Width int
}

// Item is one browsable row with its detail text.
type Item struct {
	Cells  []string
	Detail string
}

type browserKeyMap struct {
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var browserKeys = browserKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "details"),
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
	browserTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)
	browserDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	browserHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// Browser is a read-only table over a result list. Enter shows the
// selected row's detail; q quits.
type Browser struct {
	title    string
	items    []Item
	table    table.Model
	showing  bool
	quitting bool
}

// NewBrowser creates a browser over items.
func NewBrowser(title string, columns []Column, items []Item) Browser {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row(it.Cells)
	}

	height := len(rows) + 1
	if height > 15 {
		height = 15
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("63"))
	t.SetStyles(styles)

	return Browser{title: title, items: items, table: t}
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, browserKeys.Quit):
			b.quitting = true
			return b, tea.Quit
		case key.Matches(msg, browserKeys.Back):
			if b.showing {
				b.showing = false
				return b, nil
			}
			b.quitting = true
			return b, tea.Quit
		case key.Matches(msg, browserKeys.Toggle):
			if len(b.items) > 0 {
				b.showing = !b.showing
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b Browser) View() string {
	if b.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(browserTitle.Render(fmt.Sprintf("%s (%d)", b.title, len(b.items))))
	s.WriteString("\n")

	if len(b.items) == 0 {
		s.WriteString("Nothing to show.\n")
	} else {
		s.WriteString(b.table.View())
		s.WriteString("\n")
		if b.showing {
			if it, ok := b.Selected(); ok && it.Detail != "" {
				s.WriteString(browserDetail.Render(it.Detail))
				s.WriteString("\n")
			}
		}
	}

	s.WriteString(browserHelp.Render("↑/↓ move • enter details • esc back • q quit"))
	return s.String()
}

// Selected returns the row under the cursor.
func (b Browser) Selected() (Item, bool) {
	i := b.table.Cursor()
	if i < 0 || i >= len(b.items) {
		return Item{}, false
	}
	return b.items[i], true
}

// ShowingDetail reports whether the detail pane is open.
func (b Browser) ShowingDetail() bool {
	return b.showing
}

// Browse runs the browser until the user quits or ctx is cancelled.
func Browse(ctx context.Context, title string, columns []Column, items []Item) error {
	p := tea.NewProgram(NewBrowser(title, columns, items), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
