package model

import "strings"

// Grid is a cleaned table: every cell trimmed, missing cells blank.
// Rows may be ragged where the source merged cells.
type Grid [][]string

// RowCount returns the number of rows.
func (g Grid) RowCount() int { return len(g) }

// ColCount returns the width of the first row, or 0 for an empty grid.
func (g Grid) ColCount() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// RowText joins the cells of row i with single spaces. Empty cells still
// contribute a separator so the result matches how the row reads on the page.
func (g Grid) RowText(i int) string {
	if i < 0 || i >= len(g) {
		return ""
	}
	return strings.Join(g[i], " ")
}

// LowerRowText is RowText lower-cased.
func (g Grid) LowerRowText(i int) string {
	return strings.ToLower(g.RowText(i))
}

// LowerText returns every row's text joined by spaces and lower-cased.
func (g Grid) LowerText() string {
	return g.lowerRange(0, len(g))
}

// LowerHead returns the lower-cased text of the first n rows.
func (g Grid) LowerHead(n int) string {
	return g.lowerRange(0, min(n, len(g)))
}

func (g Grid) lowerRange(from, to int) string {
	rows := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		rows = append(rows, strings.Join(g[i], " "))
	}
	return strings.ToLower(strings.Join(rows, " "))
}

// Clone returns a deep copy so callers can extend it without touching g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Cell returns the cell at (row, col) or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// TextHead returns the first n characters of text, lower-cased.
func TextHead(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		r = r[:n]
	}
	return strings.ToLower(string(r))
}
