package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stavis/internal/timing"
)

// ReportTable renders the timing path report rows as an aligned text table.
// LVT rows render in the LVT style and HVT rows in the HVT style, the rest in
// the body style.
type ReportTable struct {
	Title   string
	Headers []string
	Rows    []timing.ReportRow
}

// NewReportTable builds a table for the standard three-column path report.
func NewReportTable(rows []timing.ReportRow) *ReportTable {
	return &ReportTable{
		Title:   "Timing Path Report",
		Headers: []string{"Instance", "Incremental Delay (ns)", "Total Delay (ns)"},
		Rows:    rows,
	}
}

func (t *ReportTable) rowStyle(styles Styles, v timing.Variant) lipgloss.Style {
	switch v {
	case timing.VariantLVT:
		return styles.LVT
	case timing.VariantHVT:
		return styles.HVT
	default:
		return styles.Body
	}
}

// View renders the table.
func (t *ReportTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range []string{row.Instance, row.Incremental, row.Total} {
			if i < len(colWidths) && lipgloss.Width(cell) > colWidths[i] {
				colWidths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2 // cell padding
	}

	headerStyle := styles.Bold.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		style := t.rowStyle(styles, row.Variant).Padding(0, 1)
		for i, cell := range []string{row.Instance, row.Incremental, row.Total} {
			sb.WriteString(style.Width(colWidths[i]).Render(cell))
			if i < 2 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
