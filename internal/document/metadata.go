package document

import (
	"regexp"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

const metadataPages = 5

var fiscalYearRe = regexp.MustCompile(`(20\d{2})-(\d{2})`)

// detectMetadata reads the cover pages for the fiscal year and whether the
// document is a petition or a commission order.
func detectMetadata(s *Session) model.Metadata {
	meta := model.Metadata{
		SessionID: s.id,
		Source:    s.source,
		SBU:       "G",
		PageCount: s.PageCount(),
	}

	var b strings.Builder
	for i := 0; i < min(metadataPages, s.PageCount()); i++ {
		b.WriteString(s.Text(i))
	}
	text := b.String()

	if m := fiscalYearRe.FindStringSubmatch(text); m != nil {
		fy := m[1] + "-" + m[2]
		meta.FiscalYear = &fy
	}

	lower := strings.ToLower(text)
	var docType string
	switch {
	case strings.Contains(lower, "petition"):
		docType = "Petition"
	case strings.Contains(lower, "order"):
		docType = "Order"
	}
	if docType != "" {
		meta.DocumentType = &docType
	}
	return meta
}
