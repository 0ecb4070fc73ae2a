package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles returns the default palette, or unstyled text when noColor is set.
func NewStyles(noColor bool) Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:   plain,
			Key:     plain,
			Success: plain,
			Warning: plain,
			Error:   plain,
			Muted:   plain,
			Header:  plain,
			Cell:    plain.Padding(0, 1),
			Border:  plain,
		}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Field is one label/value line.
type Field struct {
	Label string
	Value string
}

// RenderFields writes aligned "label: value" lines, skipping empty values.
func RenderFields(w io.Writer, styles Styles, fields ...Field) error {
	width := 0
	for _, f := range fields {
		if f.Value != "" && len(f.Label) > width {
			width = len(f.Label)
		}
	}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		label := styles.Key.Render(fmt.Sprintf("%-*s", width+1, f.Label+":"))
		if _, err := fmt.Fprintf(w, "%s %s\n", label, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable writes rows under headers as a bordered table. An empty row
// set prints empty instead.
func RenderTable(w io.Writer, styles Styles, headers []string, rows [][]string, empty string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, styles.Muted.Render(empty))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
