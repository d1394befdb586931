package document

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/rotisserie/eris"
)

// PdfToText reads single pages through the poppler pdftotext CLI. It is the
// fallback for pages whose content stream yields no glyphs to the native reader.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText reader. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// PageText runs pdftotext -layout on one 0-based page and returns stdout.
func (p *PdfToText) PageText(ctx context.Context, pdfPath string, page int) (string, error) {
	n := strconv.Itoa(page + 1)
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", "-f", n, "-l", n, pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "document: pdftotext failed for %s page %s: %s", pdfPath, n, stderr.String())
	}

	return stdout.String(), nil
}
