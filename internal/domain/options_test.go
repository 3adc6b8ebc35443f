package domain

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	if err := DefaultGenerationOptions().Validate(0, 0); err != nil {
		t.Fatalf("expected defaults valid: %v", err)
	}
}

func TestValidateQuestionCountBounds(t *testing.T) {
	opts := DefaultGenerationOptions()
	opts.QuestionCount = 2
	if err := opts.Validate(0, 0); err == nil || !strings.Contains(err.Error(), "at least 3") {
		t.Fatalf("expected lower bound error, got %v", err)
	}
	opts.QuestionCount = 51
	if err := opts.Validate(0, 0); err == nil || !strings.Contains(err.Error(), "cannot exceed 50") {
		t.Fatalf("expected upper bound error, got %v", err)
	}
	opts.QuestionCount = 7
	if err := opts.Validate(5, 10); err != nil {
		t.Fatalf("expected custom bounds accepted: %v", err)
	}
}

func TestValidateDifficulty(t *testing.T) {
	opts := DefaultGenerationOptions()
	opts.Difficulty = "HARD"
	if err := opts.Validate(0, 0); err != nil {
		t.Fatalf("expected case-insensitive difficulty: %v", err)
	}
	opts.Difficulty = "extreme"
	if err := opts.Validate(0, 0); err == nil {
		t.Fatalf("expected invalid difficulty rejected")
	}
}

func TestValidateKinds(t *testing.T) {
	opts := DefaultGenerationOptions()
	opts.Kinds = nil
	if err := opts.Validate(0, 0); err == nil {
		t.Fatalf("expected empty kinds rejected")
	}
	opts.Kinds = []Kind{"haiku"}
	if err := opts.Validate(0, 0); err == nil {
		t.Fatalf("expected unknown kind rejected")
	}
	opts.Kinds = []Kind{"mcq"}
	if err := opts.Validate(0, 0); err != nil {
		t.Fatalf("expected alias kind accepted: %v", err)
	}
}

func TestParseKindAliases(t *testing.T) {
	for raw, want := range map[string]Kind{
		"mcq":            KindMultipleChoice,
		"truefalse":      KindTrueFalse,
		"short_answer":   KindShortAnswer,
		"fillintheblank": KindFillInTheBlank,
	} {
		kind, ok := ParseKind(raw)
		if !ok || kind != want {
			t.Fatalf("expected %q -> %s, got %s ok=%v", raw, want, kind, ok)
		}
	}
	if _, ok := ParseKind("essay"); ok {
		t.Fatalf("expected unknown kind rejected")
	}
}

func TestHasOptions(t *testing.T) {
	if !KindMultipleChoice.HasOptions() || !KindFillInTheBlank.HasOptions() {
		t.Fatalf("expected option kinds to report options")
	}
	if KindTrueFalse.HasOptions() || KindShortAnswer.HasOptions() {
		t.Fatalf("expected non-option kinds to report no options")
	}
}
