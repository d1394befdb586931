package model

// LineItemID names a financial category tracked through the summary table.
type LineItemID string

const (
	LineItemROE              LineItemID = "roe"
	LineItemDepreciation     LineItemID = "depreciation"
	LineItemFuelCosts        LineItemID = "fuel_costs"
	LineItemOtherExpenses    LineItemID = "other_expenses"
	LineItemExceptionalItems LineItemID = "exceptional_items"
	LineItemIntangibles      LineItemID = "intangibles"
	LineItemNTI              LineItemID = "nti"
	LineItemMasterTrust      LineItemID = "master_trust"
	LineItemIFC              LineItemID = "ifc"
	LineItemOMExpenses       LineItemID = "om_expenses"
)

// AllLineItems returns the line items in report order.
func AllLineItems() []LineItemID {
	return []LineItemID{
		LineItemROE,
		LineItemDepreciation,
		LineItemFuelCosts,
		LineItemOtherExpenses,
		LineItemExceptionalItems,
		LineItemIntangibles,
		LineItemNTI,
		LineItemMasterTrust,
		LineItemIFC,
		LineItemOMExpenses,
	}
}

// LineItemStatus is the mapped outcome for a line item.
type LineItemStatus string

const (
	StatusSuccess          LineItemStatus = "success"
	StatusPartial          LineItemStatus = "partial"
	StatusExtractionFailed LineItemStatus = "extraction_failed"
	StatusNotFound         LineItemStatus = "not_found"
)

// ExtractedRow holds the four canonical figures read from one summary row.
type ExtractedRow struct {
	ArrApproved      *float64 `json:"arr_approved"`
	Actuals          *float64 `json:"actuals"`
	TUSought         *float64 `json:"tu_sought"`
	DifferencePerPDF *float64 `json:"difference_per_pdf"`
	Debug            RowDebug `json:"debug"`
}

// RowDebug points back at the source row.
type RowDebug struct {
	RowIndex int    `json:"row_index"`
	RowText  string `json:"row_text"`
}

// Present counts how many of approved, actual and claimed were read.
func (r *ExtractedRow) Present() int {
	n := 0
	for _, v := range []*float64{r.ArrApproved, r.Actuals, r.TUSought} {
		if v != nil {
			n++
		}
	}
	return n
}

// VarianceExplanation is the structured reading of a narrative block.
type VarianceExplanation struct {
	VarianceAmount      *float64 `json:"variance_amount"`
	VariancePercentage  *float64 `json:"variance_percentage"`
	Reasons             []string `json:"reasons"`
	ForceMajeureClaimed bool     `json:"force_majeure_claimed"`
	SupportingDocs      []string `json:"supporting_docs"`
	RegulatoryRefs      []string `json:"regulatory_refs"`
}

// NarrativeContext is the text found near a table and what was parsed from it.
type NarrativeContext struct {
	SectionText         string               `json:"section_text"`
	VarianceExplanation *VarianceExplanation `json:"variance_explanation"`
	ExplanationQuality  *ExplanationQuality  `json:"explanation_quality,omitempty"`
}

// ExplanationQuality rates a variance explanation out of 5.
type ExplanationQuality struct {
	Score     int      `json:"score"`
	MaxScore  int      `json:"max_score"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// DifferenceCheck compares the printed difference with claimed minus approved.
type DifferenceCheck struct {
	Computed   float64 `json:"computed"`
	Printed    float64 `json:"printed"`
	Consistent bool    `json:"consistent"`
}

// SupportStatus is the status of one supporting table a line item depends on.
type SupportStatus struct {
	Table  TableID     `json:"table"`
	Status TableStatus `json:"status"`
}

// LineItemResult is the outcome for one line item. It is one of
// *LineItemExtracted, *LineItemFailed or *LineItemNotFound.
type LineItemResult interface {
	Status() LineItemStatus
	isLineItemResult()
}

// LineItemExtracted carries values read from the summary table. Status is
// success, or partial when a required supporting table is missing.
type LineItemExtracted struct {
	Partial    bool
	Confidence float64
	Table      TableRef
	Values     ExtractedRow
	Context    *NarrativeContext
	Supporting []SupportStatus
	Missing    []TableID
	Difference *DifferenceCheck
}

func (r *LineItemExtracted) Status() LineItemStatus {
	if r.Partial {
		return StatusPartial
	}
	return StatusSuccess
}
func (*LineItemExtracted) isLineItemResult() {}

// MarshalJSON emits the status tag followed by the payload.
func (r *LineItemExtracted) MarshalJSON() ([]byte, error) {
	fields := []field{
		{"status", r.Status()},
		{"confidence", r.Confidence},
		{"page_number", r.Table.PageNumber},
		{"title", r.Table.Title},
		{"data", r.Table.Data},
		{"values", r.Values},
		{"context", r.Context},
	}
	if len(r.Supporting) > 0 {
		fields = append(fields, field{"supporting_tables", r.Supporting})
	}
	if len(r.Missing) > 0 {
		fields = append(fields, field{"missing_tables", r.Missing})
	}
	if r.Difference != nil {
		fields = append(fields, field{"difference_check", r.Difference})
	}
	return marshalOrdered(fields)
}

// LineItemFailed records a located table whose row could not be read.
type LineItemFailed struct {
	Confidence float64
	Table      TableRef
	Reason     string
}

func (*LineItemFailed) Status() LineItemStatus { return StatusExtractionFailed }
func (*LineItemFailed) isLineItemResult()      {}

// MarshalJSON emits the status tag followed by the payload.
func (r *LineItemFailed) MarshalJSON() ([]byte, error) {
	return marshalOrdered([]field{
		{"status", StatusExtractionFailed},
		{"confidence", r.Confidence},
		{"page_number", r.Table.PageNumber},
		{"title", r.Table.Title},
		{"error", r.Reason},
	})
}

// LineItemNotFound records that the source table was not located.
type LineItemNotFound struct {
	Reason string
}

func (*LineItemNotFound) Status() LineItemStatus { return StatusNotFound }
func (*LineItemNotFound) isLineItemResult()      {}

// MarshalJSON emits the status tag with zero confidence.
func (r *LineItemNotFound) MarshalJSON() ([]byte, error) {
	return marshalOrdered([]field{
		{"status", StatusNotFound},
		{"confidence", 0},
		{"error", r.Reason},
	})
}
