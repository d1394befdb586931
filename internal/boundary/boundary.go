// Package boundary locates the SBU chapters of a truing-up petition.
package boundary

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

const (
	// headingChars is how much of a page is inspected for a chapter heading.
	headingChars = 1000
	memoKey      = "boundaries"
)

var chapterRe = regexp.MustCompile(`chapter\s*[–\-]?\s*\d+`)

// Rule recognises the opening page of one section.
type Rule struct {
	Section model.SectionID
	Markers []string
	// Cap is how many pages past its start a section runs when the section
	// after it is never found.
	Cap int
}

// Rules lists the tracked sections in document order. A section is closed by
// the start of the rule that follows it; the last rule ends the walk.
var Rules = []Rule{
	{
		Section: model.SectionGeneration,
		Markers: []string{"generation", "sbu-g", "sbu – g", "sbu- g", "sbu -g"},
		Cap:     25,
	},
	{
		Section: model.SectionTransmission,
		Markers: []string{"transmission", "sbu-t", "sbu – t", "sbu- t", "sbu -t", "sldc"},
		Cap:     20,
	},
	{
		Section: model.SectionDistribution,
		Markers: []string{"distribution", "sbu-d", "sbu – d", "sbu- d", "sbu -d"},
		Cap:     125,
	},
}

func (r Rule) matches(head string) bool {
	for _, m := range r.Markers {
		if strings.Contains(head, m) {
			return true
		}
	}
	return false
}

// Detect walks pages in order and records where each section starts. Only
// the first heading page of a section counts, so a later summary chapter
// reusing the same number is ignored.
func Detect(pages document.Pages) model.Boundaries {
	n := pages.PageCount()
	starts := make([]int, len(Rules))
	for i := range starts {
		starts[i] = -1
	}

walk:
	for page := 0; page < n; page++ {
		head := model.TextHead(pages.Text(page), headingChars)
		if !chapterRe.MatchString(head) || !strings.Contains(head, "sbu") {
			continue
		}
		for i, rule := range Rules {
			if starts[i] >= 0 || !rule.matches(head) {
				continue
			}
			starts[i] = page
			if i == len(Rules)-1 {
				break walk
			}
			break
		}
	}

	out := make(model.Boundaries)
	for i, rule := range Rules {
		start := starts[i]
		if start < 0 {
			continue
		}
		end := min(start+rule.Cap, n-1)
		if i+1 < len(Rules) && starts[i+1] > start {
			end = starts[i+1] - 1
		}
		out[rule.Section] = model.PageRange{Start: start, End: end}
		zap.L().Debug("section detected",
			zap.String("section", string(rule.Section)),
			zap.Int("first_page", start+1),
			zap.Int("last_page", end+1),
		)
	}
	return out
}

// ForSession returns the session's boundaries, detecting them on first use.
func ForSession(s *document.Session) model.Boundaries {
	return s.Memo(memoKey, func() any { return Detect(s) }).(model.Boundaries)
}
