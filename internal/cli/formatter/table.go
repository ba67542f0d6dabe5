package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	return RenderSelectableTable(headers, rows, -1)
}

// RenderSelectableTable renders an aligned table and marks the row at index
// selected with a cursor in the gutter. A negative index renders no gutter.
// Columns are padded to the widest visible cell, so ANSI styling in cells
// does not break alignment.
func RenderSelectableTable(headers []string, rows [][]string, selected int) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	gutter := ""
	if selected >= 0 {
		gutter = "  "
	}

	var b strings.Builder

	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if style != nil {
				cell = style(cell)
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(gutter)
	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	b.WriteString(gutter)
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for r, row := range rows {
		switch {
		case selected < 0:
		case r == selected:
			b.WriteString(StyleHeader.Render("▸ "))
		default:
			b.WriteString(gutter)
		}
		writeRow(row, nil)
	}

	return b.String()
}
