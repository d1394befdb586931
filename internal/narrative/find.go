package narrative

import (
	"regexp"
	"strings"

	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

const (
	// windowPages is how far either side of the table page is searched.
	windowPages = 2
	blockLines  = 50
)

// Topic selects the narrative block for one line item: the first page in the
// window matching any PagePattern, then the first line on it containing any
// LineKeyword.
type Topic struct {
	PagePatterns []*regexp.Regexp
	LineKeywords []string
}

func keywordTopic(keywords ...string) Topic {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw))
	}
	return Topic{PagePatterns: patterns, LineKeywords: keywords}
}

// Topics lists the narrative rule for every line item.
var Topics = map[model.LineItemID]Topic{
	model.LineItemROE: {
		PagePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)3\.\d+\.\d*`),
			regexp.MustCompile(`(?i)ROE`),
			regexp.MustCompile(`(?i)Return on Equity`),
		},
		LineKeywords: []string{"return on equity", "roe"},
	},
	model.LineItemDepreciation:     keywordTopic("depreciation"),
	model.LineItemFuelCosts:        keywordTopic("cost of generation", "fuel"),
	model.LineItemOtherExpenses:    keywordTopic("other expenses"),
	model.LineItemExceptionalItems: keywordTopic("exceptional"),
	model.LineItemIntangibles:      keywordTopic("intangible", "amortisation", "amortization"),
	model.LineItemNTI:              keywordTopic("non-tariff", "non tariff"),
	model.LineItemMasterTrust:      keywordTopic("master trust"),
	model.LineItemIFC:              keywordTopic("interest and finance", "interest & finance", "finance charges"),
	model.LineItemOMExpenses:       keywordTopic("o&m expenses", "o&m"),
}

// Find returns up to fifty lines of text starting at the first line that
// discusses topic, searching pages page-2 through page+2. It returns "" when
// nothing qualifies.
func Find(pages document.Pages, page int, topic Topic) string {
	from := max(0, page-windowPages)
	to := min(pages.PageCount()-1, page+windowPages)
	for i := from; i <= to; i++ {
		text := pages.Text(i)
		if !matchesAny(text, topic.PagePatterns) {
			continue
		}
		lines := strings.Split(text, "\n")
		for j, line := range lines {
			if containsAny(strings.ToLower(line), topic.LineKeywords) {
				return strings.Join(lines[j:min(j+blockLines, len(lines))], "\n")
			}
		}
	}
	return ""
}

// Context finds the block for topic and parses it. A nil explanation means
// no block was found.
func Context(pages document.Pages, page int, topic Topic) *model.NarrativeContext {
	text := Find(pages, page, topic)
	ctx := &model.NarrativeContext{SectionText: text}
	if text != "" {
		exp := Parse(text)
		q := Quality(exp)
		ctx.VarianceExplanation = &exp
		ctx.ExplanationQuality = &q
	}
	return ctx
}

var nextSectionRe = regexp.MustCompile(`^\d+\.\d+\.?\d*\s+`)

// SectionText collects a numbered section such as "3.2" from start onwards:
// its heading line and every line until a heading with a different number.
// The title is the heading text after the number.
func SectionText(pages document.Pages, number string, start int) (title, text string) {
	headingRe := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(number) + `\s+(.+?)$`)

	var b strings.Builder
	inSection := false
	for i := max(start, 0); i < pages.PageCount(); i++ {
		for _, line := range strings.Split(pages.Text(i), "\n") {
			trimmed := strings.TrimSpace(line)
			if m := headingRe.FindStringSubmatch(trimmed); m != nil {
				inSection = true
				title = strings.TrimSpace(m[1])
				b.WriteString(line + "\n")
				continue
			}
			if !inSection {
				continue
			}
			if nextSectionRe.MatchString(trimmed) && !strings.HasPrefix(trimmed, number) {
				return title, b.String()
			}
			b.WriteString(line + "\n")
		}
	}
	return title, b.String()
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
