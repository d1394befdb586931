// Package extract runs every line item and supporting table against one
// document session and assembles the report.
package extract

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/boundary"
	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
	"github.com/madhavanxk/kserc-analysis-tool/internal/narrative"
	"github.com/madhavanxk/kserc-analysis-tool/internal/tablematch"
)

const (
	summaryMemoKey  = "summary"
	tableMemoPrefix = "table:"
	// differenceTolerance is how far the printed difference may drift from
	// claimed minus approved before it is flagged.
	differenceTolerance = 0.1
)

type extractor struct {
	s      *document.Session
	bounds model.Boundaries
	log    *zap.Logger
}

// Run extracts every line item and supporting table of the session's
// document. Units that are missing or unreadable are reported with their
// own status; only a page decode failure aborts the run.
func Run(s *document.Session) (model.Report, error) {
	e := &extractor{s: s, bounds: boundary.ForSession(s), log: s.Logger()}

	report := model.Report{Metadata: s.Metadata()}
	for _, id := range model.AllTables() {
		report.Chapter5Tables = append(report.Chapter5Tables, model.TableEntry{ID: id, Result: e.table(id)})
	}
	for _, id := range model.AllLineItems() {
		report.LineItems = append(report.LineItems, model.LineItemEntry{ID: id, Result: e.lineItem(id, lineItems[id])})
	}
	if err := s.Err(); err != nil {
		return model.Report{}, eris.Wrapf(err, "extract: %s", s.Source())
	}

	report.Summarize(e.bounds)
	e.log.Debug("extraction finished",
		zap.Int("line_items_found", report.Summary.LineItemsFound),
		zap.Int("tables_found", report.Summary.TablesFound),
	)
	return report, nil
}

// Tables extracts only the supporting tables of the session's document.
func Tables(s *document.Session) (model.Tables, error) {
	e := &extractor{s: s, bounds: boundary.ForSession(s), log: s.Logger()}
	var out model.Tables
	for _, id := range model.AllTables() {
		out = append(out, model.TableEntry{ID: id, Result: e.table(id)})
	}
	if err := s.Err(); err != nil {
		return nil, eris.Wrapf(err, "extract: %s", s.Source())
	}
	return out, nil
}

// generation is the generation chapter, or the whole document when it was
// not detected.
func (e *extractor) generation() model.PageRange {
	return e.bounds.RangeOr(model.SectionGeneration, model.FullDocument(e.s.PageCount()))
}

// summary locates the ARR summary table once per session.
func (e *extractor) summary() *model.TableMatch {
	return e.s.Memo(summaryMemoKey, func() any {
		return tablematch.FindSummary(e.s, e.generation(), tablematch.ARRSummary)
	}).(*model.TableMatch)
}

// table extracts a supporting table once per session.
func (e *extractor) table(id model.TableID) model.TableResult {
	return e.s.Memo(tableMemoPrefix+string(id), func() any {
		r := e.extractTable(id)
		e.log.Debug("supporting table", zap.String("table", string(id)), zap.String("status", string(r.Status())))
		return r
	}).(model.TableResult)
}

func (e *extractor) extractTable(id model.TableID) model.TableResult {
	switch id {
	case model.TableDepreciationSchedule:
		return e.depreciationSchedule()
	case model.TableLandValues:
		return e.landValues()
	case model.TableGrantsContributions:
		return e.grantsContributions()
	case model.TableGFAAdditions:
		return e.gfaAdditions()
	case model.TableFuelDetail:
		return e.fuelDetail()
	case model.TableOMDetail:
		return e.omDetail()
	case model.TableIFCDetail:
		return e.ifcDetail()
	case model.TableMasterTrustDetail:
		return e.masterTrustDetail()
	case model.TableNTIDetail:
		return e.ntiDetail()
	case model.TableIntangiblesDetail:
		return e.intangiblesDetail()
	}
	return &model.TableNotFound{}
}

func (e *extractor) lineItem(id model.LineItemID, li lineItem) model.LineItemResult {
	summary := e.summary()
	located := summary
	if li.probe != nil {
		located = tablematch.FindByPattern(e.s, e.generation(), li.probe)
	}
	if located == nil {
		e.log.Debug("line item table not found", zap.String("line_item", string(id)))
		return &model.LineItemNotFound{Reason: fmt.Sprintf("%s data not found in PDF", li.label)}
	}

	title := located.Title
	if li.probe == nil && li.term != "" {
		title = "ARR Table - " + li.term
	}
	ref := located.Ref(title)

	var grid model.Grid
	if summary != nil {
		grid = summary.Grid
	}
	row, ok := li.matchRow(grid)
	if !ok {
		e.log.Debug("line item row not matched", zap.String("line_item", string(id)))
		return &model.LineItemFailed{
			Confidence: located.Confidence,
			Table:      ref,
			Reason:     fmt.Sprintf("could not extract %s values from table", li.label),
		}
	}

	out := &model.LineItemExtracted{
		Confidence: located.Confidence,
		Table:      ref,
		Values:     *row,
		Context:    narrative.Context(e.s, located.Page, narrative.Topics[id]),
		Difference: differenceCheck(row),
	}
	for _, table := range li.requires {
		status := e.table(table).Status()
		out.Supporting = append(out.Supporting, model.SupportStatus{Table: table, Status: status})
		if status != model.TableStatusFound {
			out.Missing = append(out.Missing, table)
			out.Partial = true
		}
	}
	e.log.Debug("line item extracted",
		zap.String("line_item", string(id)),
		zap.String("status", string(out.Status())),
		zap.Int("row", row.Debug.RowIndex),
	)
	return out
}

// differenceCheck compares the printed difference with claimed minus
// approved. It is nil unless all three figures were read.
func differenceCheck(r *model.ExtractedRow) *model.DifferenceCheck {
	if r.ArrApproved == nil || r.TUSought == nil || r.DifferencePerPDF == nil {
		return nil
	}
	computed := *r.TUSought - *r.ArrApproved
	printed := *r.DifferencePerPDF
	return &model.DifferenceCheck{
		Computed:   computed,
		Printed:    printed,
		Consistent: math.Abs(computed-printed) <= differenceTolerance,
	}
}
