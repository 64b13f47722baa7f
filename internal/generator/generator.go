// Package generator produces placeholder exam questions from fixed template
// pools. Generation is fully deterministic: prompts and option sets are
// selected by index cycling, never sampled, so identical configs always yield
// identical questions.
package generator

import (
	"fmt"

	"examgen/internal/domain"
)

var grammarPrompts = []string{
	"She _____ to school every day.",
	"They _____ playing football now.",
	"_____ you like coffee?",
	"I have _____ seen that movie.",
	"He is the _____ student in class.",
}

var optionSets = [][domain.OptionCount]string{
	{"go", "goes", "going", "gone"},
	{"is", "am", "are", "be"},
	{"Do", "Does", "Did", "Done"},
	{"never", "ever", "fail", "not"},
	{"good", "better", "best", "well"},
}

var essayPrompts = []string{
	"Write a short paragraph about your hobby.",
	"Describe your best friend.",
	"What did you do last summer?",
	"Why is learning English important?",
	"Describe your dream house.",
}

// correctOptionIndex is the placeholder answer key: every question's "correct"
// answer is its second option. This is mock content, not grading logic, and is
// kept exactly as shipped.
const correctOptionIndex = 1

// Generator builds question lists from template pools.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate produces the full question list for one exam: multiple-choice
// questions first, essays after, with one sequential id counter across both.
func (g *Generator) Generate(cfg domain.GenerationConfig) ([]domain.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mcCount := cfg.MCCount()
	essayCount := cfg.EssayCount()
	questions := make([]domain.Question, 0, cfg.TotalQuestions)

	for i := 0; i < mcCount; i++ {
		idx := i % len(grammarPrompts)
		text := fmt.Sprintf("Question %d: %s (%s Level)", i+1, grammarPrompts[idx], cfg.GradeLabel)
		opts := optionSets[idx]
		q, err := domain.NewMultipleChoice(i+1, text, opts, opts[correctOptionIndex])
		if err != nil {
			return nil, fmt.Errorf("build multiple-choice question: %w", err)
		}
		questions = append(questions, q)
	}

	for i := 0; i < essayCount; i++ {
		id := mcCount + i + 1
		prompt := essayPrompts[i%len(essayPrompts)]
		text := fmt.Sprintf("Question %d: %s (%s Level)", id, prompt, cfg.GradeLabel)
		q, err := domain.NewEssay(id, text)
		if err != nil {
			return nil, fmt.Errorf("build essay question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}
