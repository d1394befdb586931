package extract

import (
	"regexp"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/cellnum"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// plainFigureRe is how the depreciation schedules print a figure: digits with
// an optional decimal part, no separators.
var plainFigureRe = regexp.MustCompile(`^\d+\.?\d*$`)

// reader parses one cell; false means the cell holds no figure.
type reader func(cell string) (float64, bool)

func plainFigure(cell string) (float64, bool) {
	if !plainFigureRe.MatchString(strings.TrimSpace(cell)) {
		return 0, false
	}
	return cellnum.ParsePlain(cell)
}

// lookup finds figures in rows whose text contains any of a set of keywords.
type lookup struct {
	grid model.Grid
}

func (l lookup) rows(keywords []string, fn func(row []string) (float64, bool)) *float64 {
	for i, row := range l.grid {
		text := l.grid.LowerRowText(i)
		for _, kw := range keywords {
			if !strings.Contains(text, strings.ToLower(kw)) {
				continue
			}
			if v, ok := fn(row); ok {
				return &v
			}
			break
		}
	}
	return nil
}

// between returns the first figure in columns [from, to) of the first
// matching row that has one. A negative to means the end of the row.
func (l lookup) between(keywords []string, from, to int, parse reader) *float64 {
	return l.rows(keywords, func(row []string) (float64, bool) {
		end := len(row)
		if to >= 0 {
			end = min(end, to)
		}
		for i := from; i < end; i++ {
			if v, ok := parse(row[i]); ok {
				return v, true
			}
		}
		return 0, false
	})
}

// last returns the right-most figure of the first matching row that has one.
func (l lookup) last(keywords []string) *float64 {
	return l.rows(keywords, lastFigure)
}

// at returns column col of the first matching row where it parses, falling
// back to the row's right-most figure when orLast is set.
func (l lookup) at(keywords []string, col int, orLast bool) *float64 {
	return l.rows(keywords, func(row []string) (float64, bool) {
		if col < len(row) {
			if v, ok := cellnum.ParsePlain(row[col]); ok {
				return v, true
			}
		}
		if orLast {
			return lastFigure(row)
		}
		return 0, false
	})
}

func lastFigure(row []string) (float64, bool) {
	for i := len(row) - 1; i >= 0; i-- {
		if v, ok := cellnum.ParsePlain(row[i]); ok {
			return v, true
		}
	}
	return 0, false
}

// orElse returns v, or fallback when v is absent.
func orElse(v, fallback *float64) *float64 {
	if v != nil {
		return v
	}
	return fallback
}

// sumPresent adds the present values; nil when none is present.
func sumPresent(vs ...*float64) *float64 {
	var (
		total float64
		found bool
	)
	for _, v := range vs {
		if v != nil {
			total += *v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

func figure(v float64) *float64 { return &v }

func zeroIfAbsent(v *float64) *float64 { return orElse(v, figure(0)) }
