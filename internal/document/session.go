package document

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

// Options controls how Open decodes a file.
type Options struct {
	// Validate parses the PDF structure before page decoding starts.
	Validate bool
	// PdfToTextPath is the pdftotext binary used for textless pages.
	PdfToTextPath string
	// TextFallback enables the pdftotext fallback.
	TextFallback bool
}

// Session owns one opened document and every cache derived from it.
// A Session is not safe for concurrent use; process independent documents
// in independent sessions.
type Session struct {
	id     string
	source string
	dec    Decoder
	log    *zap.Logger

	texts  map[int]string
	tables map[int][]model.Grid
	memo   map[string]any
	meta   model.Metadata

	err    error
	closed bool
}

var disableConfigDir sync.Once

// Open opens path as a petition document. Files ending in .json are read as
// page dumps, everything else as PDF. Any failure here is ErrDocumentOpen.
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	var (
		dec Decoder
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec, err = LoadPageDump(path)
	} else {
		if opts.Validate {
			if err := validatePDF(path); err != nil {
				return nil, eris.Wrapf(ErrDocumentOpen, "%s: %v", path, err)
			}
		}
		var fallback *PdfToText
		if opts.TextFallback {
			fallback = NewPdfToText(opts.PdfToTextPath)
		}
		dec, err = OpenPDF(ctx, path, fallback)
	}
	if err != nil {
		return nil, eris.Wrapf(ErrDocumentOpen, "%s: %v", path, err)
	}

	s, err := NewSession(dec, path)
	if err != nil {
		_ = dec.Close()
		return nil, err
	}
	return s, nil
}

// validatePDF runs a relaxed structural parse so that files which are not
// PDFs at all fail before any page is decoded.
func validatePDF(path string) error {
	disableConfigDir.Do(api.DisableConfigDir)

	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	n, err := api.PageCount(f, conf)
	if err != nil {
		return eris.Wrap(err, "document: validate pdf")
	}
	if n == 0 {
		return eris.New("document: pdf has no pages")
	}
	return nil
}

// NewSession wraps an opened decoder. Metadata is detected from the first
// pages straight away, so a decode failure there is returned.
func NewSession(dec Decoder, source string) (*Session, error) {
	id := uuid.NewString()
	s := &Session{
		id:     id,
		source: source,
		dec:    dec,
		log:    zap.L().With(zap.String("session_id", id), zap.String("source", source)),
		texts:  make(map[int]string),
		tables: make(map[int][]model.Grid),
		memo:   make(map[string]any),
	}
	s.meta = detectMetadata(s)
	if s.err != nil {
		return nil, s.err
	}
	s.log.Debug("document opened", zap.Int("pages", dec.PageCount()))
	return s, nil
}

// ID returns the session id used in logs and reports.
func (s *Session) ID() string { return s.id }

// Source returns the path the session was opened from.
func (s *Session) Source() string { return s.source }

// Logger returns the session-scoped logger.
func (s *Session) Logger() *zap.Logger { return s.log }

// Metadata returns what was detected about the document.
func (s *Session) Metadata() model.Metadata { return s.meta }

// PageCount returns the number of pages.
func (s *Session) PageCount() int { return s.dec.PageCount() }

// Text returns the plain text of page i. A textless page yields "". After a
// decode failure every call returns "" and Err reports the failure.
func (s *Session) Text(i int) string {
	if t, ok := s.texts[i]; ok {
		return t
	}
	if s.closed || s.err != nil || i < 0 || i >= s.PageCount() {
		return ""
	}
	t, err := s.dec.PageText(i)
	if err != nil {
		s.fail(i, err)
		return ""
	}
	s.texts[i] = t
	return t
}

// Tables returns the cleaned table grids of page i in page order.
func (s *Session) Tables(i int) []model.Grid {
	if g, ok := s.tables[i]; ok {
		return g
	}
	if s.closed || s.err != nil || i < 0 || i >= s.PageCount() {
		return nil
	}
	raw, err := s.dec.PageTables(i)
	if err != nil {
		s.fail(i, err)
		return nil
	}
	grids := make([]model.Grid, 0, len(raw))
	for _, t := range raw {
		grids = append(grids, CleanTable(t))
	}
	s.tables[i] = grids
	return grids
}

func (s *Session) fail(page int, err error) {
	s.err = eris.Wrapf(ErrDecode, "page %d: %v", page+1, err)
	s.log.Error("page decode failed", zap.Int("page", page+1), zap.Error(err))
}

// Err returns the first decode failure, which is terminal for the document.
func (s *Session) Err() error { return s.err }

// Memo returns the cached value under key, computing it on first use.
func (s *Session) Memo(key string, compute func() any) any {
	if v, ok := s.memo[key]; ok {
		return v
	}
	v := compute()
	if !s.closed {
		s.memo[key] = v
	}
	return v
}

// Close releases the decoder and drops every cache. It is safe to call
// more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.texts, s.tables, s.memo = nil, nil, nil
	if err := s.dec.Close(); err != nil {
		return eris.Wrap(err, "document: close")
	}
	return nil
}
