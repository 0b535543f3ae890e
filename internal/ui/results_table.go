package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column describes one column of a ResultsTable.
//
// A column with Weight 0 is fixed at Min characters. Weighted columns share
// whatever width is left, then get clamped to [Min, Max].
type Column struct {
	Key    string
	Weight int
	Min    int
	Max    int // 0 means no limit
	Right  bool
	Style  lipgloss.Style
}

// ResultRow is one line of a ResultsTable, one cell per column.
type ResultRow struct {
	Cells []string
}

// Standard columns for command listings.
var (
	ColNum         = Column{Key: "num", Min: 4, Right: true, Style: Muted}
	ColName        = Column{Key: "name", Weight: 4, Min: 10, Max: 24}
	ColCategory    = Column{Key: "category", Weight: 5, Min: 12, Max: 30, Style: Muted}
	ColDescription = Column{Key: "description", Weight: 11, Min: 20, Max: 100}
)

// Standard layouts.
var (
	// SearchLayout: number, name, category, description.
	SearchLayout = []Column{ColNum, ColName, ColCategory, ColDescription}

	// GroupLayout is used under a category header, so the category is left out.
	GroupLayout = []Column{ColNum, ColName, ColDescription}
)

const (
	cellGap    = 2
	tableInset = 2
)

// ResultsTable renders command rows sized to the terminal.
type ResultsTable struct {
	display *DisplayContext
	columns []Column
	rows    []ResultRow
}

// NewResultsTable creates a table for the given display and column layout.
func NewResultsTable(display *DisplayContext, columns []Column) *ResultsTable {
	return &ResultsTable{display: display, columns: columns}
}

// AddRow appends a row.
func (t *ResultsTable) AddRow(row ResultRow) {
	t.rows = append(t.rows, row)
}

// Widths returns the width of every column for the table's display.
func (t *ResultsTable) Widths() []int {
	return columnWidths(t.display.TermWidth, t.columns)
}

func columnWidths(termWidth int, cols []Column) []int {
	widths := make([]int, len(cols))
	free := termWidth - tableInset - cellGap*max(len(cols)-1, 0)
	weights := 0
	for i, c := range cols {
		if c.Weight == 0 {
			widths[i] = c.Min
			free -= c.Min
			continue
		}
		weights += c.Weight
	}
	free = max(free, 0)

	for i, c := range cols {
		if c.Weight == 0 {
			continue
		}
		w := max(free*c.Weight/weights, c.Min)
		if c.Max > 0 {
			w = min(w, c.Max)
		}
		widths[i] = w
	}
	return widths
}

// Render returns the table, or "" when it has no rows.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}
	widths := t.Widths()
	last := len(t.columns) - 1

	rows := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		cells := make([]string, len(t.columns))
		for i := range cells {
			if i >= len(r.Cells) {
				break
			}
			room := widths[i]
			if i < last {
				room -= cellGap
			}
			cells[i] = TruncateWithEllipsis(OneLine(r.Cells[i]), room)
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > last {
				return lipgloss.NewStyle()
			}
			c := t.columns[col]
			style := lipgloss.NewStyle().Inherit(c.Style).Width(widths[col])
			if c.Right {
				style = style.Align(lipgloss.Right)
			}
			if col < last {
				style = style.PaddingRight(cellGap)
			}
			return style
		}).
		Rows(rows...).
		Render()
}

// TruncateWithEllipsis shortens s to at most maxLen runes, ending in "..." and
// preferring to cut at a space in the second half.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	cut := string(runes[:maxLen-3])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// FormatRowNum right-aligns num to the width of maxNum (at least two digits).
func FormatRowNum(num, maxNum int) string {
	n := strconv.Itoa(num)
	width := max(len(strconv.Itoa(maxNum)), 2)
	if len(n) >= width {
		return n
	}
	return strings.Repeat(" ", width-len(n)) + n
}
