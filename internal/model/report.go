package model

// Metadata describes the processed document.
type Metadata struct {
	SessionID    string  `json:"session_id"`
	Source       string  `json:"source"`
	FiscalYear   *string `json:"fiscal_year"`
	DocumentType *string `json:"document_type"`
	SBU          string  `json:"sbu"`
	PageCount    int     `json:"page_count"`
}

// LineItemEntry pairs a line item with its result.
type LineItemEntry struct {
	ID     LineItemID
	Result LineItemResult
}

// LineItems is an ordered set of line item results.
type LineItems []LineItemEntry

// Get returns the result for id, or nil.
func (l LineItems) Get(id LineItemID) LineItemResult {
	for _, e := range l {
		if e.ID == id {
			return e.Result
		}
	}
	return nil
}

// MarshalJSON renders the entries as an object in report order.
func (l LineItems) MarshalJSON() ([]byte, error) {
	fields := make([]field, 0, len(l))
	for _, e := range l {
		fields = append(fields, field{string(e.ID), e.Result})
	}
	return marshalOrdered(fields)
}

// TableEntry pairs a supporting table with its result.
type TableEntry struct {
	ID     TableID
	Result TableResult
}

// Tables is an ordered set of supporting table results.
type Tables []TableEntry

// Get returns the result for id, or nil.
func (t Tables) Get(id TableID) TableResult {
	for _, e := range t {
		if e.ID == id {
			return e.Result
		}
	}
	return nil
}

// MarshalJSON renders the entries as an object in report order.
func (t Tables) MarshalJSON() ([]byte, error) {
	fields := make([]field, 0, len(t))
	for _, e := range t {
		fields = append(fields, field{string(e.ID), e.Result})
	}
	return marshalOrdered(fields)
}

// Summary counts outcomes across the report.
type Summary struct {
	LineItemsFound int        `json:"line_items_found"`
	LineItemsTotal int        `json:"line_items_total"`
	TablesFound    int        `json:"tables_found"`
	TablesTotal    int        `json:"tables_total"`
	Sections       Boundaries `json:"sections"`
}

// Report is the full extraction output for one document.
type Report struct {
	Metadata       Metadata  `json:"metadata"`
	LineItems      LineItems `json:"line_items"`
	Chapter5Tables Tables    `json:"chapter5_tables"`
	Summary        Summary   `json:"summary"`
}

// Summarize fills in the summary counts from the results.
func (r *Report) Summarize(sections Boundaries) {
	r.Summary = Summary{
		LineItemsTotal: len(r.LineItems),
		TablesTotal:    len(r.Chapter5Tables),
		Sections:       sections,
	}
	for _, e := range r.LineItems {
		switch e.Result.Status() {
		case StatusSuccess, StatusPartial:
			r.Summary.LineItemsFound++
		}
	}
	for _, e := range r.Chapter5Tables {
		if e.Result.Status() == TableStatusFound {
			r.Summary.TablesFound++
		}
	}
}
