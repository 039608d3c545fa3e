package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette for console output.
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#878580")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGain   = lipgloss.Color("#879A39")
	colorLoss   = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
	gainStyle   = lipgloss.NewStyle().Foreground(colorGain)
	lossStyle   = lipgloss.NewStyle().Foreground(colorLoss)
)

// separatorRow marks a horizontal rule inside a table body.
const separatorRow = "---"

// Table is a bordered text table. The first column is left aligned, the rest
// are right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(borderStyle.Render(left))
		for i, w := range widths {
			b.WriteString(borderStyle.Render(strings.Repeat("─", w+2)))
			if i < cols-1 {
				b.WriteString(borderStyle.Render(mid))
			}
		}
		b.WriteString(borderStyle.Render(right) + "\n")
	}
	line := func(cells []string, style lipgloss.Style) {
		b.WriteString(borderStyle.Render("│"))
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(style.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(style.Render(" " + pad + cell + " "))
			}
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			rule("├", "┼", "┤")
			continue
		}
		line(row, valueStyle)
	}
	rule("╰", "┴", "╯")
	return b.String()
}

// RenderKeyValues renders aligned "label  value" lines.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(fmt.Sprintf("%-*s", width, p[0])), valueStyle.Render(p[1]))
	}
	return b.String()
}

// RenderSparkline draws values as unicode blocks scaled between their minimum
// and maximum.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		b.WriteRune(blocks[max(0, min(idx, len(blocks)-1))])
	}
	return b.String()
}

// signed colors a rendered return by its sign.
func signed(text string, v float64) string {
	switch {
	case v > 0:
		return gainStyle.Render(text)
	case v < 0:
		return lossStyle.Render(text)
	}
	return text
}
