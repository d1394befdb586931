// Package narrative reads the free text around located tables: the block
// that discusses a line item and the variance explanation it gives.
package narrative

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

const minReasonLen = 10

// Monetary variance patterns in priority order; the first that matches wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)variance of\s*(\d+\.?\d*)\s*Cr`),
	regexp.MustCompile(`(?i)excess.*?(\d+\.?\d*)\s*Cr`),
	regexp.MustCompile(`(?i)shortfall.*?(\d+\.?\d*)\s*Cr`),
}

var percentRe = regexp.MustCompile(`(\d+\.?\d*)%`)

// Reason list-item patterns. Every pattern contributes, in this order; the
// reason text is the last capture group.
var reasonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([a-z])\)\s*([^\n]+)`),
	regexp.MustCompile(`(\d+)\.\s*([^\n]+)`),
	regexp.MustCompile(`[-]\s*([^\n]+)`),
}

var forceMajeureKeywords = []string{
	"force majeure",
	"unforeseen",
	"extraordinary",
	"beyond control",
	"natural calamity",
	"unprecedented",
}

var annexureRe = regexp.MustCompile(`(?i)Annexure[- ](\d+\.?\d*[a-zA-Z]?)`)

var regulatoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Regulation\s+(\d+)`),
	regexp.MustCompile(`(?i)Section\s+(\d+)`),
	regexp.MustCompile(`(?i)Order dated\s+(\d{2}\.\d{2}\.\d{4})`),
	regexp.MustCompile(`(?i)OP\s+No\.?\s*(\d+/\d{4})`),
}

// Parse reads a variance explanation out of text. Each field is found by an
// independent rule, so a block may yield reasons without an amount and so on.
// The result depends only on text.
func Parse(text string) model.VarianceExplanation {
	exp := model.VarianceExplanation{
		Reasons:        []string{},
		SupportingDocs: []string{},
		RegulatoryRefs: []string{},
	}

	for _, re := range amountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			exp.VarianceAmount = parseFloat(m[1])
			break
		}
	}
	if m := percentRe.FindStringSubmatch(text); m != nil {
		exp.VariancePercentage = parseFloat(m[1])
	}

	for _, re := range reasonPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			reason := strings.TrimSpace(m[len(m)-1])
			if len(reason) > minReasonLen {
				exp.Reasons = append(exp.Reasons, reason)
			}
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range forceMajeureKeywords {
		if strings.Contains(lower, kw) {
			exp.ForceMajeureClaimed = true
			break
		}
	}

	exp.SupportingDocs = appendUnique(exp.SupportingDocs, annexureRe, text)
	for _, re := range regulatoryPatterns {
		exp.RegulatoryRefs = appendUnique(exp.RegulatoryRefs, re, text)
	}
	return exp
}

// appendUnique appends every first capture of re in text not already in dst,
// keeping first-occurrence order.
func appendUnique(dst []string, re *regexp.Regexp, text string) []string {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if !contains(dst, m[1]) {
			dst = append(dst, m[1])
		}
	}
	return dst
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
