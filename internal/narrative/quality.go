package narrative

import "github.com/madhavanxk/kserc-analysis-tool/internal/model"

const maxQuality = 5

// Quality rates how well an explanation is supported, out of 5.
func Quality(exp model.VarianceExplanation) model.ExplanationQuality {
	q := model.ExplanationQuality{MaxScore: maxQuality, Strengths: []string{}, Gaps: []string{}}

	if exp.ForceMajeureClaimed {
		q.Score += 2
		q.Strengths = append(q.Strengths, "Force majeure claimed")
	}
	if len(exp.SupportingDocs) >= 2 {
		q.Score++
		q.Strengths = append(q.Strengths, "Supporting documents provided")
	}
	if len(exp.RegulatoryRefs) > 0 {
		q.Score++
		q.Strengths = append(q.Strengths, "Regulatory basis cited")
	} else {
		q.Gaps = append(q.Gaps, "No regulatory basis cited")
	}
	if len(exp.Reasons) >= 2 {
		q.Score++
		q.Strengths = append(q.Strengths, "Detailed explanation")
	}
	if len(exp.SupportingDocs) == 0 {
		q.Gaps = append(q.Gaps, "Request supporting documentation")
	}
	return q
}
