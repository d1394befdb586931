package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestGrid_Helpers(t *testing.T) {
	t.Parallel()

	g := Grid{
		{"No", "Particulars", "ARR Approval"},
		{"1", "Return on Equity", ""},
	}

	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 3, g.ColCount())
	assert.Equal(t, "1 Return on Equity ", g.RowText(1))
	assert.Equal(t, "", g.RowText(5))
	assert.Equal(t, "no particulars arr approval 1 return on equity ", g.LowerText())
	assert.Equal(t, "no particulars arr approval", g.LowerHead(1))
	assert.Equal(t, "ARR Approval", g.Cell(0, 2))
	assert.Equal(t, "", g.Cell(1, 9))
	assert.Equal(t, 0, Grid(nil).ColCount())
}

func TestGrid_CloneIsDeep(t *testing.T) {
	t.Parallel()

	g := Grid{{"a", "b"}}
	c := g.Clone()
	c[0][0] = "changed"
	c = append(c, []string{"new"})

	assert.Equal(t, "a", g[0][0])
	assert.Len(t, g, 1)
	assert.Nil(t, Grid(nil).Clone())
}

func TestPageRange_Clamp(t *testing.T) {
	t.Parallel()

	r, ok := PageRange{Start: 194, End: 197}.Clamp(196)
	require.True(t, ok)
	assert.Equal(t, PageRange{Start: 194, End: 195}, r)

	_, ok = PageRange{Start: 194, End: 197}.Clamp(100)
	assert.False(t, ok)

	assert.Equal(t, 4, PageRange{Start: 2, End: 5}.Len())
	assert.True(t, PageRange{Start: 2, End: 5}.Contains(5))
	assert.False(t, PageRange{Start: 2, End: 5}.Contains(6))
}

func TestBoundaries_RangeOr(t *testing.T) {
	t.Parallel()

	b := Boundaries{SectionGeneration: {Start: 6, End: 30}}
	assert.Equal(t, PageRange{Start: 6, End: 30}, b.RangeOr(SectionGeneration, FullDocument(200)))
	assert.Equal(t, PageRange{Start: 0, End: 199}, b.RangeOr(SectionTransmission, FullDocument(200)))
}

func TestTableResult_JSONCarriesStatusTag(t *testing.T) {
	t.Parallel()

	found := &TableFound{
		Confidence: 95,
		Table:      TableRef{PageNumber: 3, Title: "Table 5.27: Normative Depreciation", Data: Grid{{"a"}}},
		Values:     Values{{Name: "gfa_opening_total", Value: ptr(12.5)}, {Name: "asset_withdrawals", Value: nil}},
	}
	b, err := json.Marshal(found)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "found",
		"confidence": 95,
		"table": {"page_number": 3, "title": "Table 5.27: Normative Depreciation", "data": [["a"]]},
		"extracted_values": {"gfa_opening_total": 12.5, "asset_withdrawals": null}
	}`, string(b))

	b, err = json.Marshal(&TableNotFound{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "not_found", "confidence": 0}`, string(b))
}

func TestTableFound_StationsLeadExtractedValues(t *testing.T) {
	t.Parallel()

	found := &TableFound{
		Stations: []StationCost{{Station: "Kozhikode DPP", HFO: 1, RowTotal: 1}},
		Values:   Values{{Name: "total_fuel_cost", Value: ptr(1)}},
	}
	b, err := json.Marshal(found)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Contains(t, string(out["extracted_values"]), `"station_breakdown":[{"station":"Kozhikode DPP"`)
}

func TestLineItems_MarshalPreservesOrder(t *testing.T) {
	t.Parallel()

	items := LineItems{
		{ID: LineItemROE, Result: &LineItemNotFound{Reason: "summary table not found"}},
		{ID: LineItemDepreciation, Result: &LineItemFailed{Reason: "row not matched"}},
	}
	b, err := json.Marshal(items)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"roe":\{"status":"not_found".*\},"depreciation":\{"status":"extraction_failed"`, string(b))
	assert.Equal(t, StatusExtractionFailed, items.Get(LineItemDepreciation).Status())
	assert.Nil(t, items.Get(LineItemIFC))
}

func TestLineItemExtracted_Status(t *testing.T) {
	t.Parallel()

	r := &LineItemExtracted{}
	assert.Equal(t, StatusSuccess, r.Status())
	r.Partial = true
	r.Missing = []TableID{TableFuelDetail}
	assert.Equal(t, StatusPartial, r.Status())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"partial"`)
	assert.Contains(t, string(b), `"missing_tables":["fuel_detail"]`)
}

func TestExtractedRow_Present(t *testing.T) {
	t.Parallel()

	r := ExtractedRow{ArrApproved: ptr(1), TUSought: ptr(0)}
	assert.Equal(t, 2, r.Present())
}

func TestReport_Summarize(t *testing.T) {
	t.Parallel()

	r := &Report{
		LineItems: LineItems{
			{ID: LineItemROE, Result: &LineItemExtracted{}},
			{ID: LineItemDepreciation, Result: &LineItemExtracted{Partial: true}},
			{ID: LineItemFuelCosts, Result: &LineItemNotFound{}},
		},
		Chapter5Tables: Tables{
			{ID: TableLandValues, Result: &TableFound{}},
			{ID: TableGFAAdditions, Result: &TableNotFound{}},
		},
	}
	r.Summarize(Boundaries{SectionGeneration: {Start: 1, End: 2}})

	assert.Equal(t, 2, r.Summary.LineItemsFound)
	assert.Equal(t, 3, r.Summary.LineItemsTotal)
	assert.Equal(t, 1, r.Summary.TablesFound)
	assert.Equal(t, 2, r.Summary.TablesTotal)
	assert.Contains(t, r.Summary.Sections, SectionGeneration)
}

func TestAllIDs_NoDuplicates(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, id := range AllLineItems() {
		assert.False(t, seen[string(id)], "duplicate line item %s", id)
		seen[string(id)] = true
	}
	for _, id := range AllTables() {
		assert.False(t, seen[string(id)], "duplicate table %s", id)
		seen[string(id)] = true
	}
	assert.Len(t, AllLineItems(), 10)
	assert.Len(t, AllTables(), 10)
}
