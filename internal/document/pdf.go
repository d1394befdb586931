package document

import (
	"context"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "document: open %s", path)
	}
	return f, nil
}

// PDFDecoder decodes pages with the native PDF reader. Text and ruled tables
// of a page come from one content-stream pass, so the last decoded page is
// kept until another page is requested.
type PDFDecoder struct {
	ctx      context.Context
	path     string
	file     *os.File
	reader   *pdf.Reader
	fallback *PdfToText

	cachedPage int
	cached     *decodedPage
}

type decodedPage struct {
	text   string
	tables []RawTable
}

// newPDFReader builds the reader over an opened file.
var newPDFReader = pdf.NewReader

// OpenPDF opens path for page decoding. fallback may be nil, in which case
// pages without extractable glyphs read as "".
func OpenPDF(ctx context.Context, path string, fallback *PdfToText) (dec *PDFDecoder, err error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			dec, err = nil, eris.Errorf("document: malformed pdf %s: %v", path, r)
		}
		if err != nil {
			_ = f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, eris.Wrapf(err, "document: stat %s", path)
	}
	r, err := newPDFReader(f, info.Size())
	if err != nil {
		return nil, eris.Wrapf(err, "document: open pdf %s", path)
	}
	return &PDFDecoder{
		ctx:        ctx,
		path:       path,
		file:       f,
		reader:     r,
		fallback:   fallback,
		cachedPage: -1,
	}, nil
}

// PageCount implements Decoder.
func (d *PDFDecoder) PageCount() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// PageText implements Decoder.
func (d *PDFDecoder) PageText(page int) (string, error) {
	p, err := d.decode(page)
	if err != nil {
		return "", err
	}
	return p.text, nil
}

// PageTables implements Decoder.
func (d *PDFDecoder) PageTables(page int) ([]RawTable, error) {
	p, err := d.decode(page)
	if err != nil {
		return nil, err
	}
	return p.tables, nil
}

func (d *PDFDecoder) decode(page int) (*decodedPage, error) {
	if d.reader == nil {
		return nil, eris.New("document: decoder closed")
	}
	if page < 0 || page >= d.reader.NumPage() {
		return nil, eris.Errorf("document: page %d out of range", page)
	}
	if d.cached != nil && d.cachedPage == page {
		return d.cached, nil
	}

	p, err := d.parse(page)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.text) == "" && d.fallback != nil {
		text, err := d.fallback.PageText(d.ctx, d.path, page)
		if err != nil {
			zap.L().Debug("pdftotext fallback failed",
				zap.String("path", d.path), zap.Int("page", page+1), zap.Error(err))
		} else {
			p.text = strings.TrimRight(text, "\f\n")
		}
	}

	d.cachedPage, d.cached = page, p
	return p, nil
}

func (d *PDFDecoder) parse(page int) (p *decodedPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, eris.Errorf("document: page %d content: %v", page+1, r)
		}
	}()

	pg := d.reader.Page(page + 1)
	if pg.V.IsNull() {
		return &decodedPage{}, nil
	}
	content := pg.Content()
	glyphs := glyphsFromText(content.Text)
	return &decodedPage{
		text:   layoutText(glyphs),
		tables: buildTables(glyphs, content.Rect),
	}, nil
}

// Close implements Decoder.
func (d *PDFDecoder) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file, d.reader, d.cached = nil, nil, nil
	if err != nil {
		return eris.Wrapf(err, "document: close %s", d.path)
	}
	return nil
}
