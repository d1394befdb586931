package model

// SectionID identifies a structural chapter of a truing-up petition.
type SectionID string

const (
	SectionGeneration   SectionID = "sbu_g"
	SectionTransmission SectionID = "sbu_t"
	SectionDistribution SectionID = "sbu_d"
)

// AllSections returns the tracked sections in document order.
func AllSections() []SectionID {
	return []SectionID{SectionGeneration, SectionTransmission, SectionDistribution}
}

// PageRange is an inclusive range of 0-based page indexes.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether page lies within the range.
func (r PageRange) Contains(page int) bool {
	return page >= r.Start && page <= r.End
}

// Len returns the number of pages covered.
func (r PageRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Clamp restricts the range to a document of pageCount pages.
// The second return value is false when nothing of the range remains.
func (r PageRange) Clamp(pageCount int) (PageRange, bool) {
	if pageCount <= 0 || r.Start >= pageCount || r.End < r.Start {
		return PageRange{}, false
	}
	out := PageRange{Start: max(r.Start, 0), End: min(r.End, pageCount-1)}
	return out, out.End >= out.Start
}

// FullDocument returns the range covering every page.
func FullDocument(pageCount int) PageRange {
	return PageRange{Start: 0, End: pageCount - 1}
}

// Boundaries maps each detected section to its page range. Sections that
// were never found have no entry.
type Boundaries map[SectionID]PageRange

// Lookup returns the range for id.
func (b Boundaries) Lookup(id SectionID) (PageRange, bool) {
	r, ok := b[id]
	return r, ok
}

// RangeOr returns the range for id, or fallback when the section is missing.
func (b Boundaries) RangeOr(id SectionID, fallback PageRange) PageRange {
	if r, ok := b[id]; ok {
		return r
	}
	return fallback
}
