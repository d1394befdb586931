package tablematch

import (
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// Column synonyms of the summary table.
var (
	ApprovedColumn = []string{"arr approval", "approval", "approved"}
	ActualsColumn  = []string{"actual", "actuals"}
	ClaimedColumn  = []string{"tu sought", "truing up sought"}
)

// DifferenceColumn is where the printed difference sits in the summary
// table. Merged header cells shift it away from its heading, so it is a
// fixed index per filing layout instead of a resolved one.
const DifferenceColumn = 6

const headerScanRows = 10

// ResolveColumn returns the first column, left to right, whose non-empty
// cells in the first rows contain any synonym.
func ResolveColumn(g model.Grid, synonyms []string) (int, bool) {
	rows := g[:min(headerScanRows, len(g))]
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	syn := lowerAll(synonyms)
	for col := 0; col < width; col++ {
		var parts []string
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			cell = strings.NewReplacer("\n", " ", "\r", " ").Replace(cell)
			parts = append(parts, strings.ToLower(cell))
		}
		if containsAny(strings.Join(parts, " "), syn) {
			return col, true
		}
	}
	return -1, false
}
