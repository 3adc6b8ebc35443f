package generator

import (
	"strings"

	"docquiz-service/internal/domain"
)

// rawQuestion is the generation service's wire shape for one question. The
// correct answer is intentionally not carried into the domain model; grading
// is out of scope for this service.
type rawQuestion struct {
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation"`
}

// Sanitize converts service output into trusted domain questions. Questions
// with unknown kinds, empty prompts, or too few options are dropped rather
// than failing the whole batch.
func Sanitize(raw []rawQuestion, includeExplanations bool) domain.QuestionSet {
	out := make(domain.QuestionSet, 0, len(raw))
	for _, rq := range raw {
		kind, ok := domain.ParseKind(strings.ToLower(strings.TrimSpace(rq.Type)))
		if !ok {
			continue
		}
		prompt := strings.TrimSpace(rq.Question)
		if prompt == "" {
			continue
		}

		q := domain.Question{Kind: kind, Prompt: prompt}
		if kind.HasOptions() {
			options := make([]string, 0, len(rq.Options))
			for _, opt := range rq.Options {
				if trimmed := strings.TrimSpace(opt); trimmed != "" {
					options = append(options, trimmed)
				}
			}
			if len(options) < 2 {
				continue
			}
			q.Options = options
		}
		if includeExplanations {
			q.Explanation = strings.TrimSpace(rq.Explanation)
		}
		out = append(out, q)
	}
	return out
}
