// Package generator talks to the external quiz-generation service. The
// service is an opaque collaborator: documents and options go in, a question
// set comes out. Results are treated as untrusted input and sanitized before
// they reach a session.
package generator

import (
	"context"

	"docquiz-service/internal/domain"
)

// Generator produces a question set from uploaded documents.
type Generator interface {
	Generate(ctx context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error)
}

// Static serves a fixed question set, honoring the requested kinds, count,
// and explanation flag. Useful for tests and for running the service without
// a remote generator configured.
type Static struct {
	set domain.QuestionSet
}

func NewStatic(set domain.QuestionSet) *Static {
	return &Static{set: set}
}

func (s *Static) Generate(_ context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoInput
	}

	wanted := make(map[domain.Kind]struct{}, len(opts.Kinds))
	for _, kind := range opts.Kinds {
		if canonical, ok := domain.ParseKind(string(kind)); ok {
			wanted[canonical] = struct{}{}
		}
	}

	out := make(domain.QuestionSet, 0, len(s.set))
	for _, q := range s.set {
		if len(wanted) > 0 {
			if _, ok := wanted[q.Kind]; !ok {
				continue
			}
		}
		if !opts.IncludeExplanations {
			q.Explanation = ""
		}
		out = append(out, q)
		if opts.QuestionCount > 0 && len(out) >= opts.QuestionCount {
			break
		}
	}
	return out, nil
}
