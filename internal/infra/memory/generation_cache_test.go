package memory

import (
	"context"
	"testing"
	"time"

	"docquiz-service/internal/domain"
)

func TestGenerationCacheServesRepeatCalls(t *testing.T) {
	next := &countingGenerator{set: sampleSet()}
	cache := NewGenerationCache(next, time.Minute)

	files := sampleFiles()
	opts := domain.DefaultGenerationOptions()

	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected generator called once, got %d", next.calls)
	}

	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate 2: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected cache hit, generator calls %d", next.calls)
	}
}

func TestGenerationCacheKeySensitiveToOptions(t *testing.T) {
	next := &countingGenerator{set: sampleSet()}
	cache := NewGenerationCache(next, time.Minute)

	files := sampleFiles()
	opts := domain.DefaultGenerationOptions()
	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}

	opts.Difficulty = domain.DifficultyHard
	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate hard: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected distinct options to miss cache, calls=%d", next.calls)
	}
}

func TestGenerationCacheSkipsEmptyResults(t *testing.T) {
	next := &countingGenerator{}
	cache := NewGenerationCache(next, time.Minute)

	files := sampleFiles()
	opts := domain.DefaultGenerationOptions()
	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := cache.Generate(context.Background(), files, opts); err != nil {
		t.Fatalf("generate 2: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected empty result not cached, calls=%d", next.calls)
	}
}

type countingGenerator struct {
	set   domain.QuestionSet
	calls int
}

func (g *countingGenerator) Generate(_ context.Context, _ []domain.SourceFile, _ domain.GenerationOptions) (domain.QuestionSet, error) {
	g.calls++
	return g.set, nil
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		{Kind: domain.KindMultipleChoice, Prompt: "Pick one", Options: []string{"a", "b"}},
	}
}

func sampleFiles() []domain.SourceFile {
	return []domain.SourceFile{
		{Name: "notes.txt", Content: []byte("Paris is the capital of France.")},
	}
}
