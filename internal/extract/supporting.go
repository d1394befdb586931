package extract

import (
	"math"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/cellnum"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
	"github.com/madhavanxk/kserc-analysis-tool/internal/tablematch"
)

// fallbackConfidence is reported when values come from the broader table a
// dedicated one was missing from.
const fallbackConfidence = 70

// search is one supporting-table lookup: a signature within a page window.
type search struct {
	sig   tablematch.Detail
	pages model.PageRange
}

var (
	sbuColumns = []string{"sbu-g", "sbu-t", "sbu-d"}
	sbuGTTotal = []string{"sbu g", "sbu t", "total"}

	chapter5Assets = model.PageRange{Start: 170, End: 210}
	chapter5GFA    = model.PageRange{Start: 170, End: 195}
	chapter5OM     = model.PageRange{Start: 175, End: 215}
	chapter5IFC    = model.PageRange{Start: 175, End: 200}
	chapter5Trust  = model.PageRange{Start: 175, End: 205}
	chapter5NTI    = model.PageRange{Start: 205, End: 215}
	chapter5Amort  = model.PageRange{Start: 203, End: 210}
	// generationFallback is searched for Table G10 when the generation
	// chapter was not detected.
	generationFallback = model.PageRange{Start: 0, End: 30}
)

var (
	depreciationSearch = search{
		sig: tablematch.Detail{
			TitleKeywords:  []string{"normative depreciation"},
			ColumnKeywords: sbuColumns,
			MinRows:        10,
		},
		pages: model.PageRange{Start: 194, End: 197},
	}
	landSearch = search{
		sig:   tablematch.Detail{TitleKeywords: []string{"table", "5.28", "land"}, ColumnKeywords: sbuColumns},
		pages: chapter5Assets,
	}
	grantsSearch = search{
		sig:   tablematch.Detail{TitleKeywords: []string{"table", "5.29", "grants", "contributions"}, ColumnKeywords: sbuColumns},
		pages: chapter5Assets,
	}
	// GFA additions are read from the generation table when present, else
	// from the business-unit-wise one.
	gfaSearches = []search{
		{
			sig:   tablematch.Detail{TitleKeywords: []string{"table", "5.8", "gfa addition", "sbu g"}, ColumnKeywords: []string{"gfa", "addition"}},
			pages: chapter5GFA,
		},
		{
			sig:   tablematch.Detail{TitleKeywords: []string{"table", "5.7", "gfa addition", "sbu wise"}, ColumnKeywords: sbuColumns},
			pages: chapter5GFA,
		},
	}
	fuelSig = tablematch.Detail{
		TitleKeywords:  []string{"table", "g9", "station wise cost", "cost of generation"},
		ColumnKeywords: []string{"station", "lub. oil"},
	}
	omSearches = []search{
		{sig: tablematch.Detail{TitleKeywords: []string{"5.37", "details of o&m", "o&m expenses 2024"}, ColumnKeywords: []string{"employee", "r&m", "total"}}, pages: chapter5OM},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.38", "gross employee cost"}, ColumnKeywords: []string{"employee", "gross", "total"}}, pages: chapter5OM},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.39", "r&m expenses"}, ColumnKeywords: []string{"r&m", "repair", "total"}}, pages: chapter5OM},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.40", "administrative", "general expenses"}, ColumnKeywords: []string{"administrative", "general", "total"}}, pages: chapter5OM},
	}
	ifcSummarySearch = search{
		sig:   tablematch.Detail{TitleKeywords: []string{"5.1", "interests and finance charges", "interest and finance"}, ColumnKeywords: []string{"ubs", "total"}},
		pages: chapter5IFC,
	}
	loanSearch = search{
		sig:   tablematch.Detail{TitleKeywords: []string{"5.3", "summary of loans", "loan", "average rate"}, ColumnKeywords: []string{"loan", "interest", "average rate"}},
		pages: chapter5IFC,
	}
	ifcDetailSearch = search{
		sig:   tablematch.Detail{TitleKeywords: []string{"5.22", "interests and finance charges"}, ColumnKeywords: sbuGTTotal},
		pages: chapter5IFC,
	}
	g10Sig = tablematch.Detail{
		TitleKeywords:  []string{"table g 10", "table g10", "interest and finance charges"},
		ColumnKeywords: []string{"approved", "actual", "tu"},
		MinRows:        5,
	}
	trustSearches = []search{
		{sig: tablematch.Detail{TitleKeywords: []string{"5.17", "interest on master trust bonds", "master trust bond"}, ColumnKeywords: sbuGTTotal, MinRows: 2}, pages: chapter5Trust},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.25", "additional contribution to master trust"}, ColumnKeywords: sbuGTTotal, MinRows: 2}, pages: chapter5Trust},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.26", "repayment of master trust"}, ColumnKeywords: sbuGTTotal, MinRows: 2}, pages: chapter5Trust},
	}
	ntiSearches = []search{
		{sig: tablematch.Detail{TitleKeywords: []string{"5.49", "non-tariff income", "non tariff income"}, ColumnKeywords: sbuGTTotal}, pages: chapter5NTI},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.51", "non-tariff income", "non tariff income"}, ColumnKeywords: []string{"approved", "actuals", "claimed"}}, pages: chapter5NTI},
	}
	amortSearches = []search{
		{sig: tablematch.Detail{TitleKeywords: []string{"5.48(a)", "5.48", "amortization", "intangible assets"}, ColumnKeywords: sbuGTTotal, MinRows: 2}, pages: chapter5Amort},
		{sig: tablematch.Detail{TitleKeywords: []string{"5.48(b)", "5.48", "amortization", "transmission line"}, ColumnKeywords: []string{"transmission", "rs. cr"}, MinRows: 2}, pages: chapter5Amort},
	}
)

func (e *extractor) find(s search) *model.TableMatch {
	return tablematch.FindDetail(e.s, s.pages, s.sig)
}

// findAll runs every search; entries are nil where nothing qualified.
func (e *extractor) findAll(searches []search) []*model.TableMatch {
	out := make([]*model.TableMatch, len(searches))
	for i, s := range searches {
		out[i] = e.find(s)
	}
	return out
}

func firstFound(matches ...*model.TableMatch) *model.TableMatch {
	for _, m := range matches {
		if m != nil {
			return m
		}
	}
	return nil
}

func gridOf(m *model.TableMatch) lookup {
	if m == nil {
		return lookup{}
	}
	return lookup{grid: m.Grid}
}

func found(m *model.TableMatch, title string, values model.Values) *model.TableFound {
	return &model.TableFound{Confidence: m.Confidence, Table: m.Ref(title), Values: values}
}

func (e *extractor) depreciationSchedule() model.TableResult {
	m := e.find(depreciationSearch)
	if m == nil {
		return &model.TableNotFound{}
	}
	l := gridOf(m)
	sbuG := func(keywords ...string) *float64 { return l.between(keywords, 2, -1, plainFigure) }
	return found(m, "Table 5.27: Normative Depreciation", model.Values{
		{Name: "gfa_opening_total", Value: sbuG("approved gfa as on 31.03.2024", "adjusted gfa as on 31.03.2024", "gfa as on 31.03.2024")},
		{Name: "gfa_13_to_30_years", Value: sbuG("assets having life 13-30", "13-30 yrs", "assets having age", "13 to 30")},
		{Name: "gfa_below_13_years", Value: sbuG("gfa < 13 years old as on", "< 13 years old", "gfa < 13")},
		{Name: "asset_additions", Value: sbuG("additions during the year", "addition during", "gfa addition")},
		{Name: "asset_withdrawals", Value: zeroIfAbsent(sbuG("withdrawal", "retirement", "disposal", "less: disposal"))},
	})
}

// fromSchedule reports values read from the depreciation schedule when a
// dedicated table is missing.
func (e *extractor) fromSchedule(values func(l lookup) model.Values) model.TableResult {
	schedule, ok := e.table(model.TableDepreciationSchedule).(*model.TableFound)
	if !ok {
		return &model.TableNotFound{}
	}
	return &model.TableFound{
		Confidence:   fallbackConfidence,
		Table:        schedule.Table,
		Values:       values(lookup{grid: schedule.Table.Data}),
		FallbackFrom: model.TableDepreciationSchedule,
	}
}

func landFigures(l lookup) model.Values {
	return model.Values{
		{Name: "land_13_to_30_years", Value: l.between([]string{"value of land", "land on having age between 13 to 30"}, 2, -1, plainFigure)},
		{Name: "land_below_13_years", Value: l.between([]string{"adjusted value of land", "land (from 01.04.2011"}, 2, -1, plainFigure)},
	}
}

func (e *extractor) landValues() model.TableResult {
	m := e.find(landSearch)
	if m == nil {
		return e.fromSchedule(landFigures)
	}
	return found(m, "Table 5.28: Land Values", landFigures(gridOf(m)))
}

var (
	grantsOlderKeywords = []string{"grants and contributions on assets having life from 13 to 30", "grants and contributions till 31.03.2011"}
	grantsNewerKeywords = []string{"grants and contributions (1-4-2011 to 31-3-2024)", "grants and contributions (1-4-2011"}
)

func grantFigures(newer []string) func(l lookup) model.Values {
	return func(l lookup) model.Values {
		return model.Values{
			{Name: "grants_13_to_30_years", Value: zeroIfAbsent(l.between(grantsOlderKeywords, 2, -1, plainFigure))},
			{Name: "grants_below_13_years", Value: zeroIfAbsent(l.between(newer, 2, -1, plainFigure))},
		}
	}
}

func (e *extractor) grantsContributions() model.TableResult {
	m := e.find(grantsSearch)
	if m == nil {
		// the schedule words the newer grants row more loosely
		loose := []string{grantsNewerKeywords[0], "grants and contributions till", grantsNewerKeywords[1]}
		return e.fromSchedule(grantFigures(loose))
	}
	return found(m, "Table 5.29: Grants/Contributions", grantFigures(grantsNewerKeywords)(gridOf(m)))
}

const (
	gfaNameColumn     = 1
	gfaAdditionColumn = 4
)

func (e *extractor) gfaAdditions() model.TableResult {
	var m *model.TableMatch
	for _, s := range gfaSearches {
		if m = e.find(s); m != nil {
			break
		}
	}
	if m == nil {
		return &model.TableNotFound{}
	}

	var additions *float64
	for _, row := range m.Grid {
		if len(row) <= gfaAdditionColumn || !strings.Contains(strings.ToLower(row[gfaNameColumn]), "generation") {
			continue
		}
		if v, ok := cellnum.ParsePlain(row[gfaAdditionColumn]); ok {
			additions = &v
			break
		}
	}
	return found(m, "Table 5.7/5.8: GFA Additions", model.Values{{Name: "asset_additions", Value: additions}})
}

var stationHeaderWords = []string{"station", "heavy", "h.s.d", "furnace", "lub.", "hydel", "combustion", "table"}

const stationColumns = 6

func (e *extractor) fuelDetail() model.TableResult {
	m := tablematch.FindDetail(e.s, e.generation(), fuelSig)
	if m == nil {
		return &model.TableNotFound{}
	}

	stations := []model.StationCost{}
	var totals model.StationCost
	for _, row := range m.Grid {
		if len(row) < stationColumns {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(row[0]))
		if name == "" || containsAny(name, stationHeaderWords) {
			continue
		}
		var nums [stationColumns]float64
		for i := range nums {
			if i+1 < len(row) {
				nums[i], _ = cellnum.ParsePlain(row[i+1])
			}
		}
		cost := model.StationCost{
			Station:  strings.TrimSpace(row[0]),
			HFO:      nums[0],
			HSD:      nums[1],
			LubeOil:  nums[2],
			Hydel:    nums[3],
			IC:       nums[4],
			RowTotal: nums[5],
		}
		if strings.Contains(name, "total") {
			totals = cost
			break
		}
		for _, n := range nums {
			if n > 0 {
				stations = append(stations, cost)
				break
			}
		}
	}

	t := found(m, "Table G9: Station wise Cost of Generation", model.Values{
		{Name: "heavy_fuel_oil", Value: figure(totals.HFO)},
		{Name: "hsd_oil", Value: figure(totals.HSD)},
		{Name: "lube_oil", Value: figure(totals.LubeOil)},
		{Name: "hydel_power_gen", Value: figure(totals.Hydel)},
		{Name: "ic_power_gen", Value: figure(totals.IC)},
		{Name: "total_fuel_cost", Value: figure(totals.RowTotal)},
	})
	t.Stations = stations
	return t
}

func (e *extractor) omDetail() model.TableResult {
	tables := e.findAll(omSearches)
	primary := firstFound(tables...)
	if primary == nil {
		return &model.TableNotFound{}
	}
	summary, employee, repairs, admin := gridOf(tables[0]), gridOf(tables[1]), gridOf(tables[2]), gridOf(tables[3])
	total := []string{"total"}

	employeeCost := orElse(summary.last([]string{"employee cost", "employee expenses"}), employee.last(total))
	rmCost := orElse(summary.last([]string{"r&m", "repair and maintenance"}), repairs.last(total))
	agCost := orElse(summary.last([]string{"administrative", "a&g"}), admin.last(total))
	omTotal := orElse(summary.last([]string{"total", "om total"}), sumPresent(employeeCost, rmCost, agCost))

	return found(primary, "Tables 5.37-5.40: O&M Expenses Detail", model.Values{
		{Name: "employee_cost", Value: employeeCost},
		{Name: "rm_expenses", Value: rmCost},
		{Name: "ag_expenses", Value: agCost},
		{Name: "om_total", Value: omTotal},
		{Name: "basic_pay", Value: employee.last([]string{"basic pay", "basic salary"})},
		{Name: "da", Value: employee.last([]string{"dearness allowance", " da "})},
		{Name: "hra", Value: employee.last([]string{"hra", "house rent"})},
		{Name: "civil_rm", Value: repairs.last([]string{"civil", "building"})},
		{Name: "plant_rm", Value: repairs.last([]string{"plant", "machinery", "electrical"})},
	})
}

const (
	g10ClaimedColumn  = 4
	ifcSBUGTUColumn   = 5
	ifcDetailMinWidth = 6
)

func (e *extractor) ifcDetail() model.TableResult {
	summaryMatch := e.find(ifcSummarySearch)
	g10Match := tablematch.FindDetail(e.s, e.bounds.RangeOr(model.SectionGeneration, generationFallback), g10Sig)
	primary := firstFound(summaryMatch, g10Match)
	if primary == nil {
		return &model.TableNotFound{}
	}
	summary, g10 := gridOf(summaryMatch), gridOf(g10Match)
	loans, detail := gridOf(e.find(loanSearch)), gridOf(e.find(ifcDetailSearch))

	claimed := func(keywords ...string) *float64 { return g10.at(keywords, g10ClaimedColumn, true) }
	termLoan := claimed("interest on capital", "term loan", "capital liabilities")
	gpf := claimed("gpf", "general provident", "pf interest")
	workingCapital := claimed("working capital", "wc/od")
	trust := claimed("master trust", "trust bond")
	other := claimed("other interest", "other charges")
	subtotal := claimed("sub total", "subtotal", "balance")

	sbuG := func(keywords ...string) *float64 { return summary.between(keywords, 1, 5, cellnum.ParsePlain) }

	return found(primary, "Tables 5.1/5.3/5.22/G10: IFC Detail", model.Values{
		{Name: "term_loan_interest", Value: termLoan},
		{Name: "gpf_interest", Value: gpf},
		{Name: "wc_interest", Value: workingCapital},
		{Name: "master_trust_int", Value: trust},
		{Name: "other_charges", Value: other},
		{Name: "ifc_subtotal", Value: subtotal},
		{Name: "term_loan_approved", Value: sbuG("interest on term loan", "term loan")},
		{Name: "carrying_cost", Value: sbuG("carrying cost")},
		{Name: "avg_interest_rate", Value: loans.last([]string{"average rate", "weighted average"})},
		{Name: "sbu_g_ifc_total", Value: grossTotal(detail.grid)},
		{Name: "ifc_total", Value: orElse(subtotal, sumPresent(termLoan, gpf, workingCapital, trust, other))},
	})
}

// grossTotal reads the generation claim from the first total row of the
// detailed finance charges table that is not a deduction.
func grossTotal(g model.Grid) *float64 {
	for i, row := range g {
		if len(row) < ifcDetailMinWidth {
			continue
		}
		text := g.LowerRowText(i)
		if !strings.Contains(text, "gross total") && (!strings.Contains(text, "total") || strings.Contains(text, "less")) {
			continue
		}
		if v, ok := cellnum.ParsePlain(row[ifcSBUGTUColumn]); ok {
			return &v
		}
	}
	return nil
}

func (e *extractor) masterTrustDetail() model.TableResult {
	tables := e.findAll(trustSearches)
	if tables[0] == nil {
		return &model.TableNotFound{}
	}
	sbuG := func(m *model.TableMatch, keywords ...string) *float64 {
		return gridOf(m).between(keywords, 1, 4, cellnum.ParsePlain)
	}
	interest := sbuG(tables[0], "total", "interest")
	contribution := sbuG(tables[1], "total", "additional", "contribution")
	repayment := sbuG(tables[2], "total", "repayment")

	var computed *float64
	if interest != nil && contribution != nil {
		computed = figure(math.Round((*interest+*contribution)*100) / 100)
	}
	return found(tables[0], "Tables 5.17/5.25/5.26: Master Trust Detail", model.Values{
		{Name: "bond_interest", Value: interest},
		{Name: "additional_contrib", Value: contribution},
		{Name: "bond_repayment", Value: repayment},
		{Name: "mt_total_computed", Value: computed},
	})
}

const ntiSBUGColumn = 2

func (e *extractor) ntiDetail() model.TableResult {
	tables := e.findAll(ntiSearches)
	primary := firstFound(tables...)
	if primary == nil {
		return &model.TableNotFound{}
	}
	breakdown, claim := gridOf(tables[0]), gridOf(tables[1])
	sbuG := func(keywords ...string) *float64 {
		return breakdown.between(keywords, ntiSBUGColumn, -1, cellnum.ParsePlain)
	}
	return found(primary, "Tables 5.49/5.51: NTI Detail", model.Values{
		{Name: "misc_receipts", Value: sbuG("miscellaneous receipts", "performance incentive", "misc receipts")},
		{Name: "interest_income", Value: sbuG("interest-advance", "interest income", "interest from banks")},
		{Name: "sale_income", Value: sbuG("income from sale", "sale of scrap")},
		{Name: "sub_total_b", Value: sbuG("sub total (b)", "sub total b")},
		{Name: "sub_total_c", Value: sbuG("sub total (c)", "sub total c")},
		{Name: "nti_total", Value: sbuG("income as per accounts", "d=", "total non-tariff")},
		{Name: "nti_approved_551", Value: claim.last([]string{"approved", "arr approved"})},
		{Name: "nti_claimed_551", Value: claim.last([]string{"claimed", "tu sought"})},
	})
}

const amortSBUGColumn = 1

func (e *extractor) intangiblesDetail() model.TableResult {
	tables := e.findAll(amortSearches)
	primary := firstFound(tables...)
	if primary == nil {
		return &model.TableNotFound{}
	}
	return found(primary, "Tables 5.48(A)/(B): Intangibles Amortization", model.Values{
		{Name: "sbu_g_amort", Value: gridOf(tables[0]).at([]string{"amortization", "amortisation", "software"}, amortSBUGColumn, false)},
		{Name: "transmission_amort_sbu_t", Value: gridOf(tables[1]).last([]string{"total"})},
	})
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
