// Package document decodes petition files into per-page text and table
// grids and memoizes them for the lifetime of an extraction session.
package document

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

var (
	// ErrDocumentOpen is returned when a file cannot be opened as a document.
	ErrDocumentOpen = eris.New("document: open failed")
	// ErrDecode is returned when a page of an opened document cannot be decoded.
	ErrDecode = eris.New("document: decode failed")
)

// RawTable is a table as the decoder sees it: nil cells were merged away
// or never drawn.
type RawTable [][]*string

// Decoder exposes page text and table grids of an opened document.
// Page indexes are 0-based.
type Decoder interface {
	PageCount() int
	PageText(page int) (string, error)
	PageTables(page int) ([]RawTable, error)
	Close() error
}

// Pages is the read-only view the extraction packages work against.
type Pages interface {
	PageCount() int
	Text(page int) string
	Tables(page int) []model.Grid
}

// CleanTable blanks missing cells and trims whitespace.
func CleanTable(raw RawTable) model.Grid {
	out := make(model.Grid, 0, len(raw))
	for _, row := range raw {
		cleaned := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				cleaned[i] = strings.TrimSpace(*cell)
			}
		}
		out = append(out, cleaned)
	}
	return out
}
