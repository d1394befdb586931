package document

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// MemoryPage is one page held in memory.
type MemoryPage struct {
	Text   string     `json:"text"`
	Tables []RawTable `json:"tables"`
	// Fail makes every access to the page return this error.
	Fail error `json:"-"`
}

// MemoryDecoder serves pages from memory. It backs page dumps produced by
// external decoders and test fixtures.
type MemoryDecoder struct {
	pages  []MemoryPage
	calls  map[int]int
	closed bool
}

// NewMemoryDecoder creates a decoder over pages.
func NewMemoryDecoder(pages []MemoryPage) *MemoryDecoder {
	return &MemoryDecoder{pages: pages, calls: make(map[int]int)}
}

type pageDump struct {
	Pages []MemoryPage `json:"pages"`
}

// LoadPageDump reads a JSON page dump of the form
// {"pages":[{"text":"...","tables":[[["cell",null]]]}]}.
func LoadPageDump(path string) (*MemoryDecoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "document: read page dump %s", path)
	}
	var dump pageDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, eris.Wrapf(err, "document: parse page dump %s", path)
	}
	return NewMemoryDecoder(dump.Pages), nil
}

// PageCount implements Decoder.
func (m *MemoryDecoder) PageCount() int { return len(m.pages) }

// PageText implements Decoder.
func (m *MemoryDecoder) PageText(page int) (string, error) {
	p, err := m.page(page)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}

// PageTables implements Decoder.
func (m *MemoryDecoder) PageTables(page int) ([]RawTable, error) {
	p, err := m.page(page)
	if err != nil {
		return nil, err
	}
	return p.Tables, nil
}

func (m *MemoryDecoder) page(i int) (*MemoryPage, error) {
	if m.closed {
		return nil, eris.New("document: decoder closed")
	}
	if i < 0 || i >= len(m.pages) {
		return nil, eris.Errorf("document: page %d out of range", i)
	}
	m.calls[i]++
	p := &m.pages[i]
	if p.Fail != nil {
		return nil, p.Fail
	}
	return p, nil
}

// Calls returns how many times page i was requested.
func (m *MemoryDecoder) Calls(i int) int { return m.calls[i] }

// Close implements Decoder.
func (m *MemoryDecoder) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryDecoder) Closed() bool { return m.closed }
