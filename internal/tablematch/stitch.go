package tablematch

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// Policy decides whether the first table of a following page continues a
// matched table.
type Policy struct {
	// Window is how many pages after the start page are inspected.
	Window int
	// ColumnTolerance bounds the width difference to the matched table.
	ColumnTolerance int
	// NewTable reports whether a lower-cased first row opens a different table.
	NewTable func(firstRow string) bool
	// RequireData demands a row number or a figure in the first rows.
	RequireData bool
	// Leading rows up to and including the first row of at least
	// HeaderMinCells cells carrying a HeaderMarker are repeated headers.
	HeaderMinCells int
	HeaderMarkers  []string
}

const dataProbeRows = 5

// SummaryPolicy continues the ARR summary table.
func SummaryPolicy() Policy {
	return Policy{
		Window:          3,
		ColumnTolerance: 4,
		NewTable: func(row string) bool {
			return strings.Contains(row, "table") || strings.Contains(row, "arr of")
		},
		RequireData:    true,
		HeaderMinCells: 3,
		HeaderMarkers:  []string{"particulars", "arr approval"},
	}
}

// DetailPolicy continues a supporting table found with sig.
func DetailPolicy(sig Detail) Policy {
	titles := lowerAll(sig.TitleKeywords)
	return Policy{
		Window:          2,
		ColumnTolerance: 2,
		NewTable: func(row string) bool {
			return strings.Contains(row, "table") && containsAny(row, titles)
		},
		HeaderMarkers: append([]string{"particulars"}, lowerAll(sig.ColumnKeywords)...),
	}
}

// Stitch appends the rows of continuation pages to m and returns the result
// as a new match; m is never modified. Pages up to m.LastPage are already
// consumed, so stitching a stitched match again appends nothing. Stitching
// stops at the first page that does not continue the table.
func Stitch(pages document.Pages, m *model.TableMatch, p Policy) *model.TableMatch {
	out := *m
	out.Grid = m.Grid.Clone()
	width := m.Grid.ColCount()

	last := min(m.Page+p.Window, pages.PageCount()-1)
	for page := max(m.Page, m.LastPage) + 1; page <= last; page++ {
		tables := pages.Tables(page)
		if len(tables) == 0 {
			break
		}
		next := tables[0]
		if next.RowCount() < 2 {
			break
		}
		if p.NewTable != nil && p.NewTable(next.LowerRowText(0)) {
			break
		}
		if abs(next.ColCount()-width) > p.ColumnTolerance {
			break
		}
		if p.RequireData && !hasDataSignal(next) {
			break
		}

		skip := p.headerRows(next)
		out.Grid = append(out.Grid, next[skip:].Clone()...)
		out.LastPage = page
		zap.L().Debug("table continues", zap.Int("page", page+1), zap.Int("rows", next.RowCount()-skip))
	}
	return &out
}

func (p Policy) headerRows(g model.Grid) int {
	for i, row := range g {
		if len(row) < p.HeaderMinCells {
			continue
		}
		if containsAny(g.LowerRowText(i), p.HeaderMarkers) {
			return i + 1
		}
	}
	return 0
}

// hasDataSignal reports whether the first rows carry a row number in the
// first column or, failing that, any figure.
func hasDataSignal(g model.Grid) bool {
	probe := g[:min(dataProbeRows, len(g))]
	for _, row := range probe {
		if len(row) > 0 && isDigits(strings.TrimSpace(row[0])) {
			return true
		}
	}
	for _, row := range probe {
		if rowMatches(row, financialRe) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
