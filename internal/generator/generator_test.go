package generator

import (
	"context"
	"testing"

	"docquiz-service/internal/domain"
)

func TestStaticHonorsOptions(t *testing.T) {
	static := NewStatic(domain.QuestionSet{
		{Kind: domain.KindMultipleChoice, Prompt: "Pick one", Options: []string{"a", "b"}, Explanation: "because"},
		{Kind: domain.KindTrueFalse, Prompt: "True or False: ok", Explanation: "sure"},
		{Kind: domain.KindShortAnswer, Prompt: "Name it"},
	})

	opts := domain.GenerationOptions{
		QuestionCount:       1,
		Difficulty:          domain.DifficultyEasy,
		Kinds:               []domain.Kind{domain.KindTrueFalse},
		IncludeExplanations: false,
	}
	files := []domain.SourceFile{{Name: "notes.txt", Content: []byte("text")}}

	set, err := static.Generate(context.Background(), files, opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected 1 question, got %d", len(set))
	}
	if set[0].Kind != domain.KindTrueFalse {
		t.Fatalf("expected true_false question, got %s", set[0].Kind)
	}
	if set[0].Explanation != "" {
		t.Fatalf("expected explanation stripped, got %q", set[0].Explanation)
	}
}

func TestStaticRejectsEmptyInput(t *testing.T) {
	static := NewStatic(domain.QuestionSet{{Kind: domain.KindShortAnswer, Prompt: "Name it"}})
	if _, err := static.Generate(context.Background(), nil, domain.DefaultGenerationOptions()); err != domain.ErrNoInput {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
