// Package tablematch finds known tables by what they contain rather than
// where they sit, stitches tables that run over page breaks, and resolves
// named columns inside multi-row headers.
package tablematch

import (
	"regexp"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

var (
	// financialRe is a figure with at least two digits, e.g. "12" or "1.5".
	financialRe = regexp.MustCompile(`\d+\.?\d+`)
	numericRe   = regexp.MustCompile(`\d+\.?\d*`)
)

// HeaderBonus adds Weight to a candidate whose first row contains any Marker.
type HeaderBonus struct {
	Markers []string
	Weight  int
}

// Summary describes the primary ARR summary table. Candidates compete on
// score across the whole range; the thresholds are empirical and must not
// drift.
type Summary struct {
	// PageChars is how much of the page text is checked for the title.
	PageChars int
	// PageAllOf and PageAnyOf gate which pages are searched at all.
	PageAllOf []string
	PageAnyOf []string

	MinRows int
	MinCols int
	MaxCols int

	KeyItems    []string
	MinKeywords int
	// NumericShare is the fraction of the table's rows that must carry a figure.
	NumericShare float64

	HeaderBonuses []HeaderBonus
	TypicalRows   [2]int
	TypicalBonus  int

	TitleFormat string
}

// ARRSummary is the ARR table of the generation business unit.
var ARRSummary = Summary{
	PageChars: 2000,
	PageAllOf: []string{"arr"},
	PageAnyOf: []string{"generation", "sbu-g", "sbu – g", "sbu g"},
	MinRows:   10,
	MinCols:   4,
	MaxCols:   10,
	KeyItems: []string{
		"roe", "return on equity",
		"depreciation",
		"interest", "finance",
		"o&m", "operation", "maintenance",
		"generation", "cost of generation",
		"non-tariff", "nti",
		"master trust",
		"exceptional",
		"intangible",
		"amortisation",
	},
	MinKeywords:  7,
	NumericShare: 0.5,
	HeaderBonuses: []HeaderBonus{
		{Markers: []string{"arr"}, Weight: 3},
		{Markers: []string{"actual", "tu sought"}, Weight: 2},
		{Markers: []string{"approval", "difference"}, Weight: 1},
	},
	TypicalRows:  [2]int{10, 20},
	TypicalBonus: 3,
	TitleFormat:  "ARR Table (Page %d)",
}

func (s Summary) pageQualifies(text string) bool {
	head := model.TextHead(text, s.PageChars)
	for _, m := range s.PageAllOf {
		if !strings.Contains(head, m) {
			return false
		}
	}
	return len(s.PageAnyOf) == 0 || containsAny(head, s.PageAnyOf)
}

// score returns the keyword score and the combined score of a candidate,
// or false when the candidate is not eligible.
func (s Summary) score(g model.Grid) (keywords, total int, ok bool) {
	if g.RowCount() < s.MinRows {
		return 0, 0, false
	}
	if cols := g.ColCount(); cols < s.MinCols || cols > s.MaxCols {
		return 0, 0, false
	}

	keywords = countContained(g.LowerText(), s.KeyItems)
	if keywords < s.MinKeywords {
		return 0, 0, false
	}

	numeric := 0
	for _, row := range g[1:] {
		if rowMatches(row, financialRe) {
			numeric++
		}
	}
	if float64(numeric) < float64(g.RowCount())*s.NumericShare {
		return 0, 0, false
	}

	header := g.LowerRowText(0)
	total = keywords
	for _, b := range s.HeaderBonuses {
		if containsAny(header, b.Markers) {
			total += b.Weight
		}
	}
	if n := g.RowCount(); n >= s.TypicalRows[0] && n <= s.TypicalRows[1] {
		total += s.TypicalBonus
	}
	return keywords, total, true
}

// Detail describes a supporting table: a title hit in the first rows and most
// of the expected header keywords in the first two rows.
type Detail struct {
	TitleKeywords  []string
	ColumnKeywords []string
	// MinRows defaults to 3.
	MinRows int
}

const (
	defaultDetailRows = 3
	titleRows         = 3
	// columnShare is the fraction of ColumnKeywords the header must carry.
	columnShare = 0.6
)

func (d Detail) minRows() int {
	if d.MinRows <= 0 {
		return defaultDetailRows
	}
	return d.MinRows
}

// matchedColumns returns how many column keywords the header carries, or
// false when the table does not qualify.
func (d Detail) matchedColumns(g model.Grid) (int, bool) {
	if g.RowCount() < d.minRows() {
		return 0, false
	}
	if !containsAny(g.LowerHead(titleRows), lowerAll(d.TitleKeywords)) {
		return 0, false
	}
	var header string
	if g.RowCount() > 1 {
		header = g.LowerHead(2)
	}
	matched := countContained(header, lowerAll(d.ColumnKeywords))
	if float64(matched) < float64(len(d.ColumnKeywords))*columnShare {
		return 0, false
	}
	return matched, true
}

func (d Detail) confidence(matched int) float64 {
	if len(d.ColumnKeywords) == 0 {
		return 95
	}
	return min(float64(matched)/float64(len(d.ColumnKeywords))*100, 95)
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func countContained(text string, subs []string) int {
	n := 0
	for _, s := range subs {
		if strings.Contains(text, s) {
			n++
		}
	}
	return n
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func rowMatches(row []string, re *regexp.Regexp) bool {
	for _, cell := range row {
		if re.MatchString(cell) {
			return true
		}
	}
	return false
}
