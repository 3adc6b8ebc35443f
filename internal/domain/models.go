package domain

import "time"

// Kind identifies how a question is presented and answered.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindShortAnswer    Kind = "short_answer"
	KindFillInTheBlank Kind = "fill_in_the_blank"
)

// kindAliases maps the short identifiers used by the generation service to
// canonical kinds.
var kindAliases = map[string]Kind{
	"mcq":               KindMultipleChoice,
	"multiple_choice":   KindMultipleChoice,
	"truefalse":         KindTrueFalse,
	"true_false":        KindTrueFalse,
	"shortanswer":       KindShortAnswer,
	"short_answer":      KindShortAnswer,
	"fillintheblank":    KindFillInTheBlank,
	"fill_in_the_blank": KindFillInTheBlank,
}

// ParseKind normalizes a kind string from an external source.
func ParseKind(raw string) (Kind, bool) {
	kind, ok := kindAliases[raw]
	return kind, ok
}

// HasOptions reports whether questions of this kind carry an option list.
// Fill-in-the-blank questions are answered from an option list, same as MCQ.
func (k Kind) HasOptions() bool {
	return k == KindMultipleChoice || k == KindFillInTheBlank
}

// Question is immutable once produced by the generator.
type Question struct {
	Kind        Kind     `json:"type"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuestionSet is the ordered collection produced by one generation call.
// It is replaced wholesale on regeneration and kept on retake.
type QuestionSet []Question

// AnswerMap maps a 0-based question index to the recorded answer text
// (a selected option index rendered as text, or free text).
type AnswerMap map[int]string

// Snapshot is an immutable, exportable copy of session questions + answers.
type Snapshot struct {
	Questions   QuestionSet `json:"questions"`
	Answers     AnswerMap   `json:"answers"`
	GeneratedAt time.Time   `json:"timestamp"`
}

// SourceFile is an uploaded document handed to the generator.
type SourceFile struct {
	Name    string
	Content []byte
}

// Phase is the coarse lifecycle stage of a session.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingConfig Phase = "awaiting_config"
	PhaseGenerating     Phase = "generating"
	PhaseReviewing      Phase = "reviewing"
	PhaseError          Phase = "error"
)
