package domain

import (
	"fmt"
	"strings"
)

// Difficulty levels accepted by the generation service.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Default bounds for the number of questions per quiz.
const (
	DefaultQuestionCount = 10
	MinQuestionCount     = 3
	MaxQuestionCount     = 50
)

// GenerationOptions configures one generation request.
type GenerationOptions struct {
	QuestionCount       int    `json:"questionCount"`
	Difficulty          string `json:"difficulty"`
	Kinds               []Kind `json:"questionTypes"`
	IncludeExplanations bool   `json:"includeExplanations"`
}

// DefaultGenerationOptions returns options matching the generation service defaults.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		QuestionCount:       DefaultQuestionCount,
		Difficulty:          DifficultyMedium,
		Kinds:               []Kind{KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindFillInTheBlank},
		IncludeExplanations: true,
	}
}

// Validate checks the options against the given question count bounds.
// Zero bounds fall back to the package defaults.
func (o GenerationOptions) Validate(minCount, maxCount int) error {
	if minCount <= 0 {
		minCount = MinQuestionCount
	}
	if maxCount <= 0 {
		maxCount = MaxQuestionCount
	}
	if o.QuestionCount < minCount {
		return fmt.Errorf("question count must be at least %d", minCount)
	}
	if o.QuestionCount > maxCount {
		return fmt.Errorf("question count cannot exceed %d", maxCount)
	}
	switch strings.ToLower(o.Difficulty) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("difficulty must be one of: easy, medium, hard")
	}
	if len(o.Kinds) == 0 {
		return fmt.Errorf("at least one question type must be selected")
	}
	for _, kind := range o.Kinds {
		if _, ok := ParseKind(string(kind)); !ok {
			return fmt.Errorf("invalid question type: %s", kind)
		}
	}
	return nil
}
