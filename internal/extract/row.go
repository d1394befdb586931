package extract

import (
	"strconv"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/cellnum"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
	"github.com/madhavanxk/kserc-analysis-tool/internal/tablematch"
)

const (
	defaultHeaderEnd = 5
	minRowValues     = 2
)

// RowRule selects a summary row: a cell containing any keyword, or every
// keyword when All is set.
type RowRule struct {
	Keywords []string
	All      bool
}

func (r RowRule) matches(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	for _, kw := range r.Keywords {
		hit := strings.Contains(cell, strings.ToLower(kw))
		if hit && !r.All {
			return true
		}
		if !hit && r.All {
			return false
		}
	}
	return r.All && len(r.Keywords) > 0
}

// ExtractRow reads approved, actual, claimed and printed difference from the
// first data row matching rule. Rows of two cells or fewer are skipped, and a
// row only counts when at least two of approved, actual and claimed parse.
func ExtractRow(g model.Grid, rule RowRule) (*model.ExtractedRow, bool) {
	if g.RowCount() < 2 {
		return nil, false
	}
	approved, _ := tablematch.ResolveColumn(g, tablematch.ApprovedColumn)
	actuals, _ := tablematch.ResolveColumn(g, tablematch.ActualsColumn)
	claimed, _ := tablematch.ResolveColumn(g, tablematch.ClaimedColumn)

	for i := headerEnd(g); i < g.RowCount(); i++ {
		row := g[i]
		if len(row) <= 2 || !rowMatches(row, rule) {
			continue
		}
		out := &model.ExtractedRow{
			ArrApproved:      cellValue(row, approved),
			Actuals:          cellValue(row, actuals),
			TUSought:         cellValue(row, claimed),
			DifferencePerPDF: cellValue(row, tablematch.DifferenceColumn),
			Debug:            model.RowDebug{RowIndex: i, RowText: joinNonEmpty(row)},
		}
		if out.Present() >= minRowValues {
			return out, true
		}
	}
	return nil, false
}

// headerEnd returns the first data row: the first row numbered with a
// positive integer, or the row after a "particulars" heading.
func headerEnd(g model.Grid) int {
	if g.RowCount() < 2 {
		return 0
	}
	for i, row := range g {
		if len(row) > 0 && isRowNumber(strings.TrimSpace(row[0])) {
			return i
		}
		if len(row) <= 2 {
			continue
		}
		for _, cell := range row {
			lower := strings.ToLower(cell)
			if strings.Contains(lower, "particulars") || strings.Contains(lower, "description") {
				return i + 1
			}
		}
	}
	return defaultHeaderEnd
}

func isRowNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func rowMatches(row []string, rule RowRule) bool {
	for _, cell := range row {
		if rule.matches(cell) {
			return true
		}
	}
	return false
}

func cellValue(row []string, col int) *float64 {
	if col < 0 || col >= len(row) {
		return nil
	}
	return cellnum.Value(row[col])
}

func joinNonEmpty(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
