package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"examgen/internal/domain"
	"examgen/internal/generator"
)

type stubFonts struct {
	path string
	err  error
}

func (s stubFonts) Ensure(_ context.Context) (string, error) {
	return s.path, s.err
}

func TestRenderDegradesWithoutFont(t *testing.T) {
	r := New(stubFonts{err: domain.ErrFontUnavailable}, nil)

	result, err := r.Render(context.Background(), Input{
		Questions:        mustGenerate(t, 30, 30),
		GradeLabel:       "Lớp 5",
		DurationLabel:    "15 phút (30 câu)",
		ScorePerQuestion: 100.0 / 30,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !result.DegradedFont {
		t.Fatalf("expected degraded font flag")
	}
	if len(result.Bytes) == 0 {
		t.Fatalf("expected non-empty document")
	}
	if !bytes.HasPrefix(result.Bytes, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", result.Bytes[:8])
	}
	if result.PageCount < 1 {
		t.Fatalf("expected at least one page, got %d", result.PageCount)
	}
}

func TestRenderStrictFontFails(t *testing.T) {
	r := New(stubFonts{err: domain.ErrFontUnavailable}, nil)

	result, err := r.Render(context.Background(), Input{
		Questions:          mustGenerate(t, 30, 0),
		GradeLabel:         "Lớp 1",
		DurationLabel:      "15 phút (30 câu)",
		ScorePerQuestion:   100.0 / 30,
		RequireUnicodeFont: true,
	})
	if !errors.Is(err, domain.ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no document on strict failure")
	}
}

func TestRenderCorruptFontFails(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(corrupt, []byte("this is not a font"), 0o644); err != nil {
		t.Fatalf("write corrupt font: %v", err)
	}

	r := New(stubFonts{path: corrupt}, nil)
	_, err := r.Render(context.Background(), Input{
		Questions:        mustGenerate(t, 30, 0),
		GradeLabel:       "Lớp 1",
		DurationLabel:    "15 phút (30 câu)",
		ScorePerQuestion: 100.0 / 30,
	})
	if !errors.Is(err, domain.ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
}

func TestRenderPaginates(t *testing.T) {
	r := New(stubFonts{err: domain.ErrFontUnavailable}, nil)

	short, err := r.Render(context.Background(), Input{
		Questions:        mustGenerate(t, 30, 0)[:5],
		GradeLabel:       "Lớp 2",
		DurationLabel:    "15 phút (30 câu)",
		ScorePerQuestion: 100.0 / 30,
	})
	if err != nil {
		t.Fatalf("render short: %v", err)
	}

	long, err := r.Render(context.Background(), Input{
		Questions:        mustGenerate(t, 70, 50),
		GradeLabel:       "Lớp 2",
		DurationLabel:    "90 phút (70 câu)",
		ScorePerQuestion: 100.0 / 70,
	})
	if err != nil {
		t.Fatalf("render long: %v", err)
	}

	if long.PageCount <= short.PageCount {
		t.Fatalf("expected page count to grow: short %d, long %d", short.PageCount, long.PageCount)
	}
}

func TestSanitizerAndOptionLayout(t *testing.T) {
	if got := sanitizer.Replace("a – b’s"); got != "a - b's" {
		t.Fatalf("sanitize: %q", got)
	}

	line := optionsLine([]string{"go", "goes", "going", "gone"})
	want := "A. go      B. goes      C. going      D. gone      "
	if line != want {
		t.Fatalf("options line %q, want %q", line, want)
	}
}

func mustGenerate(t *testing.T, total int, essayPct float64) []domain.Question {
	t.Helper()
	questions, err := generator.New().Generate(domain.GenerationConfig{
		GradeLabel:      "Lớp 2",
		TotalQuestions:  total,
		EssayPercentage: essayPct,
	})
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	return questions
}
