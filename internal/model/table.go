package model

import "encoding/json"

// TableMatch is a located (and possibly stitched) table.
type TableMatch struct {
	// Page is the 0-based page the table starts on.
	Page int
	// LastPage is the last page whose rows were consumed, equal to Page
	// until a continuation is stitched on.
	LastPage     int
	Grid         Grid
	Score        int
	KeywordScore int
	Confidence   float64
	Title        string
}

// PageNumber returns the 1-based start page.
func (m *TableMatch) PageNumber() int { return m.Page + 1 }

// Ref returns the serialisable reference for this match under title.
func (m *TableMatch) Ref(title string) TableRef {
	return TableRef{PageNumber: m.PageNumber(), Title: title, Data: m.Grid}
}

// TableRef is the page, title and grid of a found table as reported.
type TableRef struct {
	PageNumber int    `json:"page_number"`
	Title      string `json:"title"`
	Data       Grid   `json:"data"`
}

// TableID names a supporting table.
type TableID string

const (
	TableDepreciationSchedule TableID = "depreciation_schedule"
	TableLandValues           TableID = "land_values"
	TableGrantsContributions  TableID = "grants_contributions"
	TableGFAAdditions         TableID = "gfa_additions"
	TableFuelDetail           TableID = "fuel_detail"
	TableOMDetail             TableID = "om_detail"
	TableIFCDetail            TableID = "ifc_detail"
	TableMasterTrustDetail    TableID = "master_trust_detail"
	TableNTIDetail            TableID = "nti_detail"
	TableIntangiblesDetail    TableID = "intangibles_detail"
)

// AllTables returns the supporting tables in report order.
func AllTables() []TableID {
	return []TableID{
		TableDepreciationSchedule,
		TableLandValues,
		TableGrantsContributions,
		TableGFAAdditions,
		TableFuelDetail,
		TableOMDetail,
		TableIFCDetail,
		TableMasterTrustDetail,
		TableNTIDetail,
		TableIntangiblesDetail,
	}
}

// TableStatus is the table-level outcome.
type TableStatus string

const (
	TableStatusFound    TableStatus = "found"
	TableStatusNotFound TableStatus = "not_found"
)

// TableResult is the outcome of extracting one supporting table. It is
// either a *TableFound or a *TableNotFound.
type TableResult interface {
	Status() TableStatus
	isTableResult()
}

// NamedValue is one extracted figure; a nil Value means the row or cell was absent.
type NamedValue struct {
	Name  string
	Value *float64
}

// Values holds extracted figures in schema order.
type Values []NamedValue

// Get returns the value for name, or nil.
func (v Values) Get(name string) *float64 {
	for _, nv := range v {
		if nv.Name == name {
			return nv.Value
		}
	}
	return nil
}

// StationCost is one station row of the station-wise cost of generation table.
type StationCost struct {
	Station  string  `json:"station"`
	HFO      float64 `json:"hfo"`
	HSD      float64 `json:"hsd"`
	LubeOil  float64 `json:"lube_oil"`
	Hydel    float64 `json:"hydel"`
	IC       float64 `json:"ic"`
	RowTotal float64 `json:"total"`
}

// TableFound carries a located supporting table and its named values.
type TableFound struct {
	Confidence float64
	Table      TableRef
	Values     Values
	// Stations is only populated for the fuel detail table.
	Stations []StationCost
	// FallbackFrom names the broader table the values were read from when
	// the dedicated table was missing.
	FallbackFrom TableID
}

func (*TableFound) Status() TableStatus { return TableStatusFound }
func (*TableFound) isTableResult()      {}

// MarshalJSON emits the status tag followed by the payload.
func (t *TableFound) MarshalJSON() ([]byte, error) {
	values := make([]field, 0, len(t.Values)+1)
	if t.Stations != nil {
		values = append(values, field{"station_breakdown", t.Stations})
	}
	for _, nv := range t.Values {
		values = append(values, field{nv.Name, nv.Value})
	}
	ev, err := marshalOrdered(values)
	if err != nil {
		return nil, err
	}
	fields := []field{
		{"status", TableStatusFound},
		{"confidence", t.Confidence},
		{"table", t.Table},
		{"extracted_values", json.RawMessage(ev)},
	}
	if t.FallbackFrom != "" {
		fields = append(fields, field{"fallback_from", t.FallbackFrom})
	}
	return marshalOrdered(fields)
}

// TableNotFound records that no candidate table qualified.
type TableNotFound struct{}

func (*TableNotFound) Status() TableStatus { return TableStatusNotFound }
func (*TableNotFound) isTableResult()      {}

// MarshalJSON emits the status tag with zero confidence.
func (*TableNotFound) MarshalJSON() ([]byte, error) {
	return marshalOrdered([]field{{"status", TableStatusNotFound}, {"confidence", 0}})
}
