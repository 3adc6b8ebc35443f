package session

import (
	"context"
	"sync"
	"time"

	"docquiz-service/internal/domain"
)

// Generator produces a question set from uploaded documents. Implementations
// live in internal/generator; the call may block for an unbounded duration,
// so hosts typically run RequestGeneration on its own goroutine.
type Generator interface {
	Generate(ctx context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error)
}

// FileValidator checks an uploaded file before it is accepted as quiz input.
type FileValidator interface {
	Validate(name string, size int) error
}

// Limits bounds the accepted generation options.
type Limits struct {
	MinQuestionCount int
	MaxQuestionCount int
}

// Controller drives the session state machine: it collects input files,
// mediates with the external generator, and serves navigation and export on
// top of the Model. All methods are safe for concurrent use; at most one
// generation request is in flight at a time.
type Controller struct {
	generator Generator
	files     FileValidator
	limits    Limits

	mu      sync.Mutex
	model   *Model
	phase   domain.Phase
	pending []domain.SourceFile
	lastErr string
}

func NewController(generator Generator, files FileValidator, limits Limits) *Controller {
	return newControllerWithClock(generator, files, limits, time.Now)
}

// newControllerWithClock is test-only for deterministic snapshot timestamps.
func newControllerWithClock(generator Generator, files FileValidator, limits Limits, now func() time.Time) *Controller {
	return &Controller{
		generator: generator,
		files:     files,
		limits:    limits,
		model:     newModelWithClock(now),
		phase:     domain.PhaseIdle,
	}
}

// Phase returns the current lifecycle stage.
func (c *Controller) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastError returns the user-visible reason for the most recent failed
// generation, empty when the session is not in the error phase.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SubmitFiles accepts a new batch of input documents and moves the session to
// the configuration stage. An empty batch is rejected with ErrNoInput and any
// previously loaded quiz stays reviewable.
func (c *Controller) SubmitFiles(files []domain.SourceFile) error {
	if len(files) == 0 {
		return domain.ErrNoInput
	}
	if c.files != nil {
		for _, f := range files {
			if err := c.files.Validate(f.Name, len(f.Content)); err != nil {
				return err
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == domain.PhaseGenerating {
		return domain.ErrGenerationInProgress
	}
	c.pending = files
	c.phase = domain.PhaseAwaitingConfig
	return nil
}

// RequestGeneration invokes the external generator with the submitted files.
// It blocks until the generator returns; hosts that need asynchrony run it on
// a goroutine. A second call while one is in flight fails with
// ErrGenerationInProgress and does not disturb the first. On failure or an
// empty result the phase moves to error and any previously loaded question
// set is preserved for re-display.
func (c *Controller) RequestGeneration(ctx context.Context, opts domain.GenerationOptions) error {
	c.mu.Lock()
	if c.phase == domain.PhaseGenerating {
		c.mu.Unlock()
		return domain.ErrGenerationInProgress
	}
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return domain.ErrNoInput
	}
	if err := opts.Validate(c.limits.MinQuestionCount, c.limits.MaxQuestionCount); err != nil {
		c.mu.Unlock()
		return err
	}
	files := c.pending
	c.phase = domain.PhaseGenerating
	c.lastErr = ""
	c.mu.Unlock()

	set, err := c.generator.Generate(ctx, files, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil && len(set) == 0 {
		err = domain.ErrEmptySet
	}
	if err != nil {
		c.phase = domain.PhaseError
		c.lastErr = err.Error()
		return err
	}
	if err := c.model.Load(set); err != nil {
		c.phase = domain.PhaseError
		c.lastErr = err.Error()
		return err
	}
	c.phase = domain.PhaseReviewing
	return nil
}

// RecordAnswer stores an answer for the question at the given index without
// moving the current position.
func (c *Controller) RecordAnswer(index int, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.RecordAnswer(index, value)
}

// Advance moves the current position by delta, clamped to the question range.
// The pending value is the in-progress answer for the current question,
// captured by the presentation layer at the moment of navigation; a non-empty
// value is persisted before moving.
func (c *Controller) Advance(delta int, pending string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.model.Loaded() {
		return domain.ErrNoActiveQuiz
	}
	if pending != "" {
		if err := c.model.RecordAnswer(c.model.Current(), pending); err != nil {
			return err
		}
	}
	target := c.model.Current() + delta
	if target < 0 {
		target = 0
	}
	if last := c.model.Len() - 1; target > last {
		target = last
	}
	c.model.GoTo(target)
	return nil
}

// Retake clears all answers and returns to the first question, keeping the
// same question set for a fresh attempt.
func (c *Controller) Retake() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.model.Loaded() {
		return domain.ErrNoActiveQuiz
	}
	c.model.Reset()
	c.phase = domain.PhaseReviewing
	return nil
}

// Export produces an immutable snapshot of the current quiz and answers,
// stamped with the generation time.
func (c *Controller) Export() (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Snapshot()
}

// CurrentQuestion returns the question at the current position.
func (c *Controller) CurrentQuestion() (domain.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.CurrentQuestion()
}

// QuestionNumber returns the 1-based number of the current question, 0 when
// no quiz is loaded.
func (c *Controller) QuestionNumber() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.model.Loaded() {
		return 0
	}
	return c.model.Current() + 1
}

// TotalQuestions returns the size of the loaded question set.
func (c *Controller) TotalQuestions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Len()
}

// CanGoPrevious reports whether backward navigation is possible.
func (c *Controller) CanGoPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Loaded() && c.model.Current() > 0
}

// CanGoNext reports whether forward navigation is possible.
func (c *Controller) CanGoNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Loaded() && c.model.Current() < c.model.Len()-1
}

// RecordedAnswer returns the stored answer for the given question index.
func (c *Controller) RecordedAnswer(index int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Answer(index)
}
