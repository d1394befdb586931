package extract

import (
	"regexp"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// lineItem is how one financial category is read from the summary table.
type lineItem struct {
	label string
	// term titles the reported table; empty uses the summary's own title.
	term string
	// rows are tried in order, the first that yields a row wins.
	rows     []RowRule
	requires []model.TableID
	// probe, when set, decides whether the item was found at all by looking
	// for its own table in the generation chapter.
	probe []*regexp.Regexp
}

func anyOf(keywords ...string) RowRule { return RowRule{Keywords: keywords} }

var fuelTablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Table\s*[G-]?\s*\d+.*Fuel`),
	regexp.MustCompile(`(?i)Fuel.*Cost`),
	regexp.MustCompile(`(?i)Fuel.*Expense`),
	regexp.MustCompile(`(?i)Cost.*Generation`),
}

// lineItems holds the rule for every tracked category. Report order comes
// from model.AllLineItems.
var lineItems = map[model.LineItemID]lineItem{
	model.LineItemROE: {
		label: "ROE",
		rows:  []RowRule{anyOf("roe", "return on equity")},
	},
	model.LineItemDepreciation: {
		label:    "Depreciation",
		rows:     []RowRule{anyOf("depreciation")},
		requires: []model.TableID{model.TableDepreciationSchedule, model.TableLandValues, model.TableGrantsContributions},
	},
	model.LineItemFuelCosts: {
		label:    "Fuel",
		rows:     []RowRule{anyOf("cost of generation of power", "generation of power", "cost of generation")},
		requires: []model.TableID{model.TableFuelDetail},
		probe:    fuelTablePatterns,
	},
	model.LineItemOtherExpenses: {
		label: "Other Expenses",
		term:  "Other Expenses",
		rows:  []RowRule{anyOf("other expenses", "discount to consumers", "other exp", "miscellaneous write")},
	},
	model.LineItemExceptionalItems: {
		label: "Exceptional Items",
		term:  "Exceptional Items",
		rows:  []RowRule{anyOf("exceptional", "exceptional items")},
	},
	model.LineItemIntangibles: {
		label:    "Intangibles",
		term:     "Intangible Assets",
		rows:     []RowRule{anyOf("intangible", "amortisation", "amortization")},
		requires: []model.TableID{model.TableIntangiblesDetail},
	},
	model.LineItemNTI: {
		label:    "NTI",
		term:     "Non-Tariff Income",
		rows:     []RowRule{anyOf("less non-tariff", "less non tariff", "non-tariff income", "non tariff income")},
		requires: []model.TableID{model.TableNTIDetail},
	},
	model.LineItemMasterTrust: {
		label:    "Master Trust",
		term:     "Master Trust",
		rows:     []RowRule{anyOf("master trust", "contribution to master trust", "additional contribution")},
		requires: []model.TableID{model.TableMasterTrustDetail},
	},
	model.LineItemIFC: {
		label:    "IFC",
		term:     "Interest & Finance Charges",
		rows:     []RowRule{anyOf("interest", "finance charge", "interest & finance")},
		requires: []model.TableID{model.TableIFCDetail},
	},
	model.LineItemOMExpenses: {
		label: "O&M",
		term:  "O&M Expenses",
		rows: []RowRule{
			anyOf("o&m expenses - total", "o&m expenses-total"),
			anyOf("o&m expenses"),
		},
		requires: []model.TableID{model.TableOMDetail},
	},
}

// matchRow tries each rule in order against g.
func (li lineItem) matchRow(g model.Grid) (*model.ExtractedRow, bool) {
	for _, rule := range li.rows {
		if row, ok := ExtractRow(g, rule); ok {
			return row, true
		}
	}
	return nil, false
}
