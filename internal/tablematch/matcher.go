package tablematch

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// FindSummary returns the highest scoring summary table in r, stitched with
// its continuation pages, or nil. Ties keep the first candidate found.
func FindSummary(pages document.Pages, r model.PageRange, sig Summary) *model.TableMatch {
	r, ok := r.Clamp(pages.PageCount())
	if !ok {
		return nil
	}

	var (
		best      *model.TableMatch
		bestTotal int
	)
	for page := r.Start; page <= r.End; page++ {
		if !sig.pageQualifies(pages.Text(page)) {
			continue
		}
		for _, g := range pages.Tables(page) {
			keywords, total, ok := sig.score(g)
			if !ok || total <= bestTotal {
				continue
			}
			bestTotal = total
			best = &model.TableMatch{
				Page:         page,
				LastPage:     page,
				Grid:         g,
				Score:        total,
				KeywordScore: keywords,
			}
		}
	}
	if best == nil || best.KeywordScore < sig.MinKeywords {
		zap.L().Debug("summary table not found", zap.Int("first_page", r.Start+1), zap.Int("last_page", r.End+1))
		return nil
	}

	best.Confidence = min(float64(best.KeywordScore*5), 95)
	best.Title = fmt.Sprintf(sig.TitleFormat, best.PageNumber())
	stitched := Stitch(pages, best, SummaryPolicy())
	zap.L().Debug("summary table found",
		zap.Int("page", stitched.PageNumber()),
		zap.Int("score", stitched.Score),
		zap.Int("rows", stitched.Grid.RowCount()),
	)
	return stitched
}

// FindDetail returns the first table in r that carries sig's title and
// header keywords, stitched with its continuation pages, or nil.
func FindDetail(pages document.Pages, r model.PageRange, sig Detail) *model.TableMatch {
	r, ok := r.Clamp(pages.PageCount())
	if !ok {
		return nil
	}
	for page := r.Start; page <= r.End; page++ {
		for _, g := range pages.Tables(page) {
			matched, ok := sig.matchedColumns(g)
			if !ok {
				continue
			}
			m := &model.TableMatch{
				Page:       page,
				LastPage:   page,
				Grid:       g,
				Score:      matched,
				Confidence: sig.confidence(matched),
			}
			return Stitch(pages, m, DetailPolicy(sig))
		}
	}
	return nil
}

// FindByPattern returns the first table on the first page in r whose text
// matches any pattern. The matched text becomes the title and the confidence
// reflects how table-like the grid is.
func FindByPattern(pages document.Pages, r model.PageRange, patterns []*regexp.Regexp) *model.TableMatch {
	r, ok := r.Clamp(pages.PageCount())
	if !ok {
		return nil
	}
	for page := r.Start; page <= r.End; page++ {
		text := pages.Text(page)
		for _, p := range patterns {
			loc := p.FindStringIndex(text)
			if loc == nil {
				continue
			}
			tables := pages.Tables(page)
			if len(tables) == 0 {
				continue
			}
			return &model.TableMatch{
				Page:       page,
				LastPage:   page,
				Grid:       tables[0],
				Confidence: structuralConfidence(tables[0]),
				Title:      text[loc[0]:loc[1]],
			}
		}
	}
	return nil
}

var probeHeaderKeywords = []string{"claimed", "approved", "myt", "actual", "amount", "arr", "tu sought"}

// structuralConfidence scores a probed grid out of 100. Grids of fewer than
// three rows score 0.3.
func structuralConfidence(g model.Grid) float64 {
	if g.RowCount() < 3 {
		return 0.3
	}
	score := 30.0

	numeric := 0
	for _, row := range g[1:] {
		for _, cell := range row {
			if numericRe.MatchString(cell) {
				numeric++
			}
		}
	}
	if numeric >= g.RowCount()-1 {
		score += 40
	}

	for _, kw := range probeHeaderKeywords {
		for _, cell := range g[0] {
			if strings.Contains(strings.ToLower(cell), kw) {
				score += 6
				break
			}
		}
	}
	return min(score, 100)
}
