package session

import (
	"fmt"
	"time"

	"docquiz-service/internal/domain"
)

// Model holds the state of one quiz attempt: the loaded question set, the
// recorded answers, and the current navigation position. It enforces the
// index invariant on every mutation but has no internal locking; the
// Controller serializes access.
type Model struct {
	questions   domain.QuestionSet
	answers     domain.AnswerMap
	current     int
	generatedAt time.Time
	now         func() time.Time
}

func NewModel() *Model {
	return newModelWithClock(time.Now)
}

// newModelWithClock allows deterministic timestamps in tests.
func newModelWithClock(now func() time.Time) *Model {
	return &Model{
		answers: make(domain.AnswerMap),
		now:     now,
	}
}

// Load replaces the question set wholesale, clears all answers, and resets
// navigation to the first question. The previous state is left untouched when
// the new set is empty.
func (m *Model) Load(set domain.QuestionSet) error {
	if len(set) == 0 {
		return domain.ErrEmptySet
	}
	m.questions = set
	m.answers = make(domain.AnswerMap)
	m.current = 0
	m.generatedAt = m.now()
	return nil
}

// Loaded reports whether a question set is present.
func (m *Model) Loaded() bool {
	return len(m.questions) > 0
}

// Len returns the number of loaded questions.
func (m *Model) Len() int {
	return len(m.questions)
}

// Current returns the current navigation index.
func (m *Model) Current() int {
	return m.current
}

// CurrentQuestion returns the question at the current index.
func (m *Model) CurrentQuestion() (domain.Question, error) {
	if !m.Loaded() {
		return domain.Question{}, domain.ErrNoActiveQuiz
	}
	return m.questions[m.current], nil
}

// RecordAnswer stores the answer for the given question index. It does not
// move the current index. The index check is defensive; callers always pass
// the current index.
func (m *Model) RecordAnswer(index int, value string) error {
	if !m.Loaded() {
		return domain.ErrNoActiveQuiz
	}
	if index < 0 || index >= len(m.questions) {
		return fmt.Errorf("answer index %d out of range [0,%d)", index, len(m.questions))
	}
	m.answers[index] = value
	return nil
}

// Answer returns the recorded answer for the given index, if any.
func (m *Model) Answer(index int) (string, bool) {
	value, ok := m.answers[index]
	return value, ok
}

// GoTo moves the current index. Out-of-range targets are ignored, so
// navigation clamps instead of failing.
func (m *Model) GoTo(index int) {
	if index < 0 || index >= len(m.questions) {
		return
	}
	m.current = index
}

// Reset clears all answers and returns to the first question while keeping
// the question set, for a fresh attempt.
func (m *Model) Reset() {
	m.answers = make(domain.AnswerMap)
	m.current = 0
}

// Snapshot produces a deep copy of questions and answers so later mutation of
// the live session cannot alter an already produced snapshot.
func (m *Model) Snapshot() (domain.Snapshot, error) {
	if !m.Loaded() {
		return domain.Snapshot{}, domain.ErrNoActiveQuiz
	}

	questions := make(domain.QuestionSet, len(m.questions))
	for i, q := range m.questions {
		copied := q
		if q.Options != nil {
			copied.Options = append([]string(nil), q.Options...)
		}
		questions[i] = copied
	}

	answers := make(domain.AnswerMap, len(m.answers))
	for index, value := range m.answers {
		answers[index] = value
	}

	return domain.Snapshot{
		Questions:   questions,
		Answers:     answers,
		GeneratedAt: m.generatedAt,
	}, nil
}
