package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

func scheduleGrid() model.Grid {
	return model.Grid{
		{"Normative Depreciation for 2024-25", "", "", "", "", ""},
		{"Sl", "Particulars", "SBU-G", "SBU-T", "SBU-D", "Total"},
		{"1", "Approved GFA as on 31.03.2024", "1000.50", "500", "2000", "3500.50"},
		{"2", "Assets having life 13-30 yrs", "400", "100", "900", "1400"},
		{"3", "GFA < 13 years old as on 31.03.2024", "600.50", "400", "1100", "2100.50"},
		{"4", "Value of land on having age between 13 to 30", "20", "5", "10", "35"},
		{"5", "Adjusted value of land (from 01.04.2011)", "15", "3", "8", "26"},
		{"6", "Grants and contributions on assets having life from 13 to 30", "12", "1", "2", "15"},
		{"7", "Grants and contributions (1-4-2011 to 31-3-2024)", "7", "1", "1", "9"},
		{"8", "Additions during the year", "55.25", "10", "20", "85.25"},
		{"9", "Total", "-", "-", "-", "-"},
	}
}

func value(t *testing.T, r model.TableResult, name string) *float64 {
	t.Helper()
	found, ok := r.(*model.TableFound)
	require.True(t, ok, "table not found")
	return found.Values.Get(name)
}

func TestDepreciationSchedule(t *testing.T) {
	e := petition(220).page(195, "", scheduleGrid()).extractor(t)

	r := e.table(model.TableDepreciationSchedule)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 196, found.Table.PageNumber)
	assert.Equal(t, "Table 5.27: Normative Depreciation", found.Table.Title)
	assert.InDelta(t, 95.0, found.Confidence, 1e-9)

	assert.InDelta(t, 1000.5, *value(t, r, "gfa_opening_total"), 1e-9)
	assert.InDelta(t, 400.0, *value(t, r, "gfa_13_to_30_years"), 1e-9)
	assert.InDelta(t, 600.5, *value(t, r, "gfa_below_13_years"), 1e-9)
	assert.InDelta(t, 55.25, *value(t, r, "asset_additions"), 1e-9)
	assert.Zero(t, *value(t, r, "asset_withdrawals"))
}

func TestDepreciationSchedule_OutsideWindow(t *testing.T) {
	e := petition(220).page(199, "", scheduleGrid()).extractor(t)
	assert.Equal(t, model.TableStatusNotFound, e.table(model.TableDepreciationSchedule).Status())
	assert.Equal(t, model.TableStatusNotFound, e.table(model.TableLandValues).Status())
}

func TestLandAndGrants_FallBackToSchedule(t *testing.T) {
	e := petition(220).page(195, "", scheduleGrid()).extractor(t)

	land, ok := e.table(model.TableLandValues).(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, model.TableDepreciationSchedule, land.FallbackFrom)
	assert.InDelta(t, 70.0, land.Confidence, 1e-9)
	assert.Equal(t, 196, land.Table.PageNumber)
	assert.InDelta(t, 20.0, *land.Values.Get("land_13_to_30_years"), 1e-9)
	assert.InDelta(t, 15.0, *land.Values.Get("land_below_13_years"), 1e-9)

	grants := e.table(model.TableGrantsContributions)
	assert.InDelta(t, 12.0, *value(t, grants, "grants_13_to_30_years"), 1e-9)
	assert.InDelta(t, 7.0, *value(t, grants, "grants_below_13_years"), 1e-9)
}

func TestLandValues_DedicatedTable(t *testing.T) {
	land := model.Grid{
		{"Table 5.28: Land", "", "", "", ""},
		{"Particulars", "SBU-G", "SBU-T", "SBU-D", "Total"},
		{"Value of land", "1", "30.75", "2", "3"},
	}
	e := petition(220).page(180, "", land).page(195, "", scheduleGrid()).extractor(t)

	found, ok := e.table(model.TableLandValues).(*model.TableFound)
	require.True(t, ok)
	assert.Empty(t, found.FallbackFrom)
	assert.Equal(t, "Table 5.28: Land Values", found.Table.Title)
	// the first figure from the third column on
	assert.InDelta(t, 30.75, *found.Values.Get("land_13_to_30_years"), 1e-9)
	assert.Nil(t, found.Values.Get("land_below_13_years"))
}

func TestRun_DepreciationWithSupportingTables(t *testing.T) {
	report, err := Run(petition(220).page(195, "", scheduleGrid()).session(t))
	require.NoError(t, err)

	dep, ok := report.LineItems.Get(model.LineItemDepreciation).(*model.LineItemExtracted)
	require.True(t, ok)
	assert.Equal(t, model.StatusSuccess, dep.Status())
	assert.Empty(t, dep.Missing)
	assert.Equal(t, []model.SupportStatus{
		{Table: model.TableDepreciationSchedule, Status: model.TableStatusFound},
		{Table: model.TableLandValues, Status: model.TableStatusFound},
		{Table: model.TableGrantsContributions, Status: model.TableStatusFound},
	}, dep.Supporting)
	assert.Equal(t, 3, report.Summary.TablesFound)
}

func TestGFAAdditions(t *testing.T) {
	byUnit := model.Grid{
		{"Table 5.7: GFA addition SBU wise", "", "", "", ""},
		{"No", "SBU", "SBU-G", "SBU-T", "GFA"},
		{"1", "Transmission", "0", "0", "12.00"},
		{"2", "Generation", "0", "0", "1,234.50"},
	}
	e := petition(220).page(185, "", byUnit).extractor(t)

	r := e.table(model.TableGFAAdditions)
	assert.InDelta(t, 1234.5, *value(t, r, "asset_additions"), 1e-9)
	assert.Equal(t, "Table 5.7/5.8: GFA Additions", r.(*model.TableFound).Table.Title)
}

func fuelPetition() *doc {
	g9 := model.Grid{
		{"Table G9: Station wise Cost of Generation (Rs Cr)", "", "", "", "", "", ""},
		{"Station", "Heavy Fuel Oil", "HSD Oil", "Lub. Oil", "For Hydel Power Gen", "For IC Power Gen", "TOTAL"},
		{"Idukki", "0", "0", "0.50", "1.20", "0", "1.70"},
		{"Kozhikode", "3.10", "2.00", "0.40", "0", "0.10", "5.60"},
		{"Spare", "0", "0", "0", "0", "0", "0"},
		{"Total", "3.10", "2.00", "0.90", "1.20", "0.10", "7.30"},
		{"Brahmapuram", "9", "9", "9", "9", "9", "45"},
	}
	return petition(5).page(3, "Table G9 Station wise Cost of Generation", g9)
}

func TestFuelDetail(t *testing.T) {
	e := fuelPetition().extractor(t)

	found, ok := e.table(model.TableFuelDetail).(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, []model.StationCost{
		{Station: "Idukki", LubeOil: 0.5, Hydel: 1.2, RowTotal: 1.7},
		{Station: "Kozhikode", HFO: 3.1, HSD: 2, LubeOil: 0.4, IC: 0.1, RowTotal: 5.6},
	}, found.Stations)
	assert.InDelta(t, 3.1, *found.Values.Get("heavy_fuel_oil"), 1e-9)
	assert.InDelta(t, 0.9, *found.Values.Get("lube_oil"), 1e-9)
	assert.InDelta(t, 7.3, *found.Values.Get("total_fuel_cost"), 1e-9)
}

func TestRun_FuelWithStationTable(t *testing.T) {
	report, err := Run(fuelPetition().session(t))
	require.NoError(t, err)

	fuel, ok := report.LineItems.Get(model.LineItemFuelCosts).(*model.LineItemExtracted)
	require.True(t, ok)
	assert.Equal(t, model.StatusSuccess, fuel.Status())
	assert.Equal(t, 4, fuel.Table.PageNumber)
}

func TestIFCDetail_FromG10(t *testing.T) {
	g10 := model.Grid{
		{"Table G10: Interest and Finance Charges", "", "", "", "", ""},
		{"No", "Particulars", "Approved", "Actual", "TU", "Difference"},
		{"1", "Interest on capital liabilities", "10", "11", "12", "2"},
		{"2", "GPF interest", "5", "5", "6", "1"},
		{"3", "Working capital interest", "1", "1", "-", "0.5"},
		{"4", "Sub total", "16", "17", "18.5", "2"},
	}
	e := petition(5).page(3, "", g10).extractor(t)

	r := e.table(model.TableIFCDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 4, found.Table.PageNumber)
	assert.InDelta(t, 12.0, *found.Values.Get("term_loan_interest"), 1e-9)
	assert.InDelta(t, 6.0, *found.Values.Get("gpf_interest"), 1e-9)
	// unreadable claim falls back to the last figure in the row
	assert.InDelta(t, 0.5, *found.Values.Get("wc_interest"), 1e-9)
	assert.Nil(t, found.Values.Get("master_trust_int"))
	assert.InDelta(t, 18.5, *found.Values.Get("ifc_total"), 1e-9)
	assert.Nil(t, found.Values.Get("term_loan_approved"))
}

func TestOMDetail_FromSubTables(t *testing.T) {
	employee := model.Grid{
		{"Table 5.38: Gross Employee Cost", "", ""},
		{"Particulars", "Employee cost SBU-G", "Total"},
		{"Basic pay", "100", "300"},
		{"Dearness allowance", "50", "150"},
		{"Total", "150", "450"},
	}
	e := petition(220).page(200, "", employee).extractor(t)

	r := e.table(model.TableOMDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 201, found.Table.PageNumber)
	assert.InDelta(t, 450.0, *found.Values.Get("employee_cost"), 1e-9)
	assert.InDelta(t, 450.0, *found.Values.Get("om_total"), 1e-9)
	assert.InDelta(t, 300.0, *found.Values.Get("basic_pay"), 1e-9)
	assert.InDelta(t, 150.0, *found.Values.Get("da"), 1e-9)
	assert.Nil(t, found.Values.Get("rm_expenses"))
}

func TestMasterTrustDetail(t *testing.T) {
	interest := model.Grid{
		{"Table 5.17: Interest on Master Trust Bonds", "", "", ""},
		{"Particulars", "SBU G", "SBU T", "Total"},
		{"Interest on bonds", "120.40", "60", "180.40"},
	}
	contribution := model.Grid{
		{"Table 5.25: Additional contribution to Master Trust", "", "", ""},
		{"Particulars", "SBU G", "SBU T", "Total"},
		{"Total", "9.62", "5", "14.62"},
	}
	e := petition(220).page(190, "", interest).page(193, "", contribution).extractor(t)

	r := e.table(model.TableMasterTrustDetail)
	assert.InDelta(t, 120.4, *value(t, r, "bond_interest"), 1e-9)
	assert.InDelta(t, 9.62, *value(t, r, "additional_contrib"), 1e-9)
	assert.InDelta(t, 130.02, *value(t, r, "mt_total_computed"), 1e-9)
	assert.Nil(t, value(t, r, "bond_repayment"))
}

func TestSupportingTables_NotFound(t *testing.T) {
	e := petition(4).extractor(t)
	for _, id := range model.AllTables() {
		assert.Equal(t, model.TableStatusNotFound, e.table(id).Status(), id)
	}
}

func TestTables(t *testing.T) {
	tables, err := Tables(petition(220).page(195, "", scheduleGrid()).session(t))
	require.NoError(t, err)
	require.Len(t, tables, len(model.AllTables()))
	assert.Equal(t, model.TableStatusFound, tables.Get(model.TableDepreciationSchedule).Status())
	assert.Equal(t, model.TableStatusNotFound, tables.Get(model.TableFuelDetail).Status())
}

func ntiBreakdown() model.Grid {
	return model.Grid{
		{"Table 5.49: Non-Tariff Income", "", "", "", ""},
		{"No", "Particulars", "SBU G", "SBU T", "Total"},
		{"1", "Miscellaneous receipts", "12.50", "3", "15.50"},
		{"2", "Interest income", "4.25", "1", "5.25"},
		{"3", "Income from sale of scrap", "2", "0", "2"},
		{"4", "Total non-tariff income", "18.75", "4", "22.75"},
	}
}

func ntiClaim() model.Grid {
	return model.Grid{
		{"Table 5.51: Non-Tariff Income", "", "", ""},
		{"Particulars", "Approved", "Actuals", "Claimed"},
		{"NTI approved in ARR", "20", "", ""},
		{"NTI claimed for truing up", "", "", "22.50"},
	}
}

func TestNTIDetail(t *testing.T) {
	e := petition(220).page(205, "", ntiBreakdown()).page(209, "", ntiClaim()).extractor(t)

	r := e.table(model.TableNTIDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 206, found.Table.PageNumber)
	assert.Equal(t, "Tables 5.49/5.51: NTI Detail", found.Table.Title)
	assert.InDelta(t, 95.0, found.Confidence, 1e-9)

	assert.InDelta(t, 12.5, *value(t, r, "misc_receipts"), 1e-9)
	assert.InDelta(t, 4.25, *value(t, r, "interest_income"), 1e-9)
	assert.InDelta(t, 2.0, *value(t, r, "sale_income"), 1e-9)
	assert.InDelta(t, 18.75, *value(t, r, "nti_total"), 1e-9)
	assert.Nil(t, value(t, r, "sub_total_b"))
	assert.InDelta(t, 20.0, *value(t, r, "nti_approved_551"), 1e-9)
	assert.InDelta(t, 22.5, *value(t, r, "nti_claimed_551"), 1e-9)
}

func TestNTIDetail_ClaimTableOnly(t *testing.T) {
	e := petition(220).page(209, "", ntiClaim()).extractor(t)

	r := e.table(model.TableNTIDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 210, found.Table.PageNumber)
	assert.Nil(t, value(t, r, "misc_receipts"))
	assert.Nil(t, value(t, r, "nti_total"))
	assert.InDelta(t, 22.5, *value(t, r, "nti_claimed_551"), 1e-9)
}

func amortIntangibles() model.Grid {
	return model.Grid{
		{"Table 5.48(a): Amortization of intangible assets", "", "", ""},
		{"Particulars", "SBU G", "SBU T", "Total"},
		{"Amortization of software", "1.75", "0.5", "2.25"},
	}
}

func amortTransmission() model.Grid {
	return model.Grid{
		{"Table 5.48(b): Amortization of transmission line (Rs. Cr)", "", ""},
		{"Particulars", "Transmission line", "Amount"},
		{"Opening", "", "10.00"},
		{"Total", "", "3.40"},
	}
}

func TestIntangiblesDetail(t *testing.T) {
	e := petition(220).page(204, "", amortIntangibles()).page(207, "", amortTransmission()).extractor(t)

	r := e.table(model.TableIntangiblesDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 205, found.Table.PageNumber)
	assert.Equal(t, "Tables 5.48(A)/(B): Intangibles Amortization", found.Table.Title)
	// the title row mentions amortization but has no figure in column 1
	assert.InDelta(t, 1.75, *value(t, r, "sbu_g_amort"), 1e-9)
	assert.InDelta(t, 3.4, *value(t, r, "transmission_amort_sbu_t"), 1e-9)
}

func TestIntangiblesDetail_TransmissionTableOnly(t *testing.T) {
	e := petition(220).page(207, "", amortTransmission()).extractor(t)

	r := e.table(model.TableIntangiblesDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 208, found.Table.PageNumber)
	assert.Nil(t, value(t, r, "sbu_g_amort"))
	assert.InDelta(t, 3.4, *value(t, r, "transmission_amort_sbu_t"), 1e-9)
}

func TestIFCDetail_FromSummaryWithoutG10(t *testing.T) {
	ifcSummary := model.Grid{
		{"Table 5.1: Interests and Finance Charges", "", "", "", ""},
		{"Particulars", "UBS", "SBU G", "SBU T", "Total"},
		{"Interest on term loan", "", "25.50", "10", "35.50"},
		{"Carrying cost", "", "3.25", "1", "4.25"},
	}
	e := petition(220).page(180, "", ifcSummary).extractor(t)

	r := e.table(model.TableIFCDetail)
	found, ok := r.(*model.TableFound)
	require.True(t, ok)
	assert.Equal(t, 181, found.Table.PageNumber)
	assert.InDelta(t, 95.0, found.Confidence, 1e-9)
	assert.InDelta(t, 25.5, *value(t, r, "term_loan_approved"), 1e-9)
	assert.InDelta(t, 3.25, *value(t, r, "carrying_cost"), 1e-9)
	// claimed figures only come from G10
	assert.Nil(t, value(t, r, "term_loan_interest"))
	assert.Nil(t, value(t, r, "ifc_total"))
}
