package main

import (
	"fmt"
	"strings"
)

import (
	"github.com/charmbracelet/lipgloss"
)

import (
	"github.com/timtadh/xbase/table"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#7D56F4"}).
			Bold(true).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	FrameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#7D56F4"})
)

var prettyHeader = []string{"#", "name", "type", "offset", "size", "decimal"}

// Pretty renders the header and column directory of t as a boxed table.
func Pretty(t *table.Table) string {
	rows := [][]string{prettyHeader}
	for i, c := range t.Columns() {
		rows = append(rows, []string{
			fmt.Sprint(i),
			c.Name(),
			c.Type().String(),
			fmt.Sprint(c.Offset()),
			fmt.Sprint(c.Size()),
			fmt.Sprint(c.Decimal()),
		})
	}

	widths := make([]int, len(prettyHeader))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		style := CellStyle
		if r == 0 {
			style = HeaderStyle
		}
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			cells = append(cells, style.Copy().Width(widths[i]+2).Render(cell))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	h := t.Header()
	title := TitleStyle.Render(fmt.Sprintf(
		"%s  version 0x%02x  rows %d  record %d bytes  modified %s",
		t.Name(), h.Version, t.Count(), h.RecordLength, t.LastModified().Format("2006-01-02"),
	))
	return lipgloss.JoinVertical(lipgloss.Left, title, FrameStyle.Render(strings.Join(lines, "\n")))
}
