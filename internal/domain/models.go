package domain

import (
	"fmt"
	"math"
)

// Kind discriminates the two question variants.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindEssay          Kind = "essay"
)

// OptionCount is the fixed number of choices a multiple-choice question carries.
const OptionCount = 4

// TotalScore is the fixed score an exam is worth; it is split evenly across questions.
const TotalScore = 100

// Question is one generated exam question. The fields are unexported so that
// the multiple-choice invariants (exactly four options, a non-empty correct
// answer) and the essay invariants (no options, no answer) can only be
// established through the constructors.
type Question struct {
	id      int
	text    string
	kind    Kind
	options []string
	correct string
}

// NewMultipleChoice builds a multiple-choice question. The fixed-size options
// parameter makes "exactly four options" a compile-time property of callers.
func NewMultipleChoice(id int, text string, options [OptionCount]string, correct string) (Question, error) {
	if id <= 0 {
		return Question{}, fmt.Errorf("question id must be positive, got %d", id)
	}
	if text == "" {
		return Question{}, fmt.Errorf("question %d: empty text", id)
	}
	for i, opt := range options {
		if opt == "" {
			return Question{}, fmt.Errorf("question %d: empty option %d", id, i)
		}
	}
	if correct == "" {
		return Question{}, fmt.Errorf("question %d: empty correct answer", id)
	}
	return Question{
		id:      id,
		text:    text,
		kind:    KindMultipleChoice,
		options: options[:],
		correct: correct,
	}, nil
}

// NewEssay builds an essay question. Essay questions structurally carry no
// options and no answer key.
func NewEssay(id int, text string) (Question, error) {
	if id <= 0 {
		return Question{}, fmt.Errorf("question id must be positive, got %d", id)
	}
	if text == "" {
		return Question{}, fmt.Errorf("question %d: empty text", id)
	}
	return Question{id: id, text: text, kind: KindEssay}, nil
}

// ID returns the question's sequential number within its exam, starting at 1.
func (q Question) ID() int { return q.id }

// Text returns the display text, already numbered and grade-annotated.
func (q Question) Text() string { return q.text }

// Kind reports whether the question is multiple-choice or essay.
func (q Question) Kind() Kind { return q.kind }

// Options returns a copy of the answer choices; nil for essay questions.
func (q Question) Options() []string {
	if q.options == nil {
		return nil
	}
	out := make([]string, len(q.options))
	copy(out, q.options)
	return out
}

// CorrectAnswer returns the answer key text; empty for essay questions.
func (q Question) CorrectAnswer() string { return q.correct }

// GenerationConfig describes one exam generation request.
type GenerationConfig struct {
	GradeLabel      string
	TotalQuestions  int
	EssayPercentage float64 // in [0, 100]
}

// Validate checks the config against the documented ranges.
func (c GenerationConfig) Validate() error {
	if c.GradeLabel == "" {
		return fmt.Errorf("%w: empty grade label", ErrInvalidConfig)
	}
	if c.TotalQuestions < 1 {
		return fmt.Errorf("%w: total questions must be >= 1, got %d", ErrInvalidConfig, c.TotalQuestions)
	}
	if c.EssayPercentage < 0 || c.EssayPercentage > 100 {
		return fmt.Errorf("%w: essay percentage must be in [0,100], got %g", ErrInvalidConfig, c.EssayPercentage)
	}
	return nil
}

// EssayCount derives the number of essay questions: floor(total * pct / 100).
func (c GenerationConfig) EssayCount() int {
	return int(math.Floor(float64(c.TotalQuestions) * c.EssayPercentage / 100))
}

// MCCount derives the number of multiple-choice questions.
func (c GenerationConfig) MCCount() int {
	return c.TotalQuestions - c.EssayCount()
}
