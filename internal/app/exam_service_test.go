package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examgen/internal/app"
	"examgen/internal/domain"
	"examgen/internal/generator"
	"examgen/internal/render"
)

type fakeRenderer struct {
	lastInput render.Input
	result    *render.Result
	err       error
}

func (f *fakeRenderer) Render(_ context.Context, in render.Input) (*render.Result, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestService(renderer app.DocumentRenderer, outputDir string) *app.ExamService {
	return app.NewExamService(generator.New(), renderer, app.Options{OutputDir: outputDir}, nil)
}

func TestBuildDerivesExam(t *testing.T) {
	service := newTestService(&fakeRenderer{}, t.TempDir())

	exam, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 5",
		DurationLabel: "90 phút (70 câu)",
		TestType:      domain.TestTypeMixed,
		EssayPercent:  30,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if exam.ID == "" {
		t.Fatalf("expected a session id")
	}
	if exam.TotalQuestions != 70 || len(exam.Questions) != 70 {
		t.Fatalf("expected 70 questions, got %d/%d", exam.TotalQuestions, len(exam.Questions))
	}
	if want := 100.0 / 70; exam.ScorePerQuestion != want {
		t.Fatalf("score per question %g, want %g", exam.ScorePerQuestion, want)
	}
	if exam.EssayPercent != 30 {
		t.Fatalf("essay percent %g, want 30", exam.EssayPercent)
	}
}

func TestBuildPinsPercentForPureTypes(t *testing.T) {
	service := newTestService(&fakeRenderer{}, t.TempDir())

	mcOnly, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 1",
		DurationLabel: "15 phút (30 câu)",
		TestType:      domain.TestTypeMultipleChoice,
		EssayPercent:  80, // ignored for pure MC
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if mcOnly.EssayPercent != 0 {
		t.Fatalf("mc-only essay percent %g, want 0", mcOnly.EssayPercent)
	}

	essayOnly, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 1",
		DurationLabel: "60 phút (50 câu)",
		TestType:      domain.TestTypeEssay,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if essayOnly.EssayPercent != 100 {
		t.Fatalf("essay-only percent %g, want 100", essayOnly.EssayPercent)
	}
}

func TestBuildRejectsUnknownCatalogEntries(t *testing.T) {
	service := newTestService(&fakeRenderer{}, t.TempDir())

	_, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 11",
		DurationLabel: "15 phút (30 câu)",
		TestType:      domain.TestTypeMixed,
	})
	if !errors.Is(err, domain.ErrUnknownGrade) {
		t.Fatalf("expected ErrUnknownGrade, got %v", err)
	}

	_, err = service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 1",
		DurationLabel: "45 phút (40 câu)",
		TestType:      domain.TestTypeMixed,
	})
	if !errors.Is(err, domain.ErrUnknownDuration) {
		t.Fatalf("expected ErrUnknownDuration, got %v", err)
	}
}

func TestExportPassesRenderInput(t *testing.T) {
	renderer := &fakeRenderer{result: &render.Result{Bytes: []byte("%PDF-fake"), PageCount: 3}}
	service := newTestService(renderer, t.TempDir())

	exam, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 5",
		DurationLabel: "15 phút (30 câu)",
		TestType:      domain.TestTypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	export, err := service.Export(context.Background(), exam)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.Filename != "De_Thi_Lớp_5_30cau.pdf" {
		t.Fatalf("filename %q", export.Filename)
	}
	if export.PageCount != 3 {
		t.Fatalf("page count %d", export.PageCount)
	}
	if len(renderer.lastInput.Questions) != 30 {
		t.Fatalf("renderer got %d questions", len(renderer.lastInput.Questions))
	}
	if renderer.lastInput.GradeLabel != "Lớp 5" || renderer.lastInput.DurationLabel != "15 phút (30 câu)" {
		t.Fatalf("renderer input mismatch: %+v", renderer.lastInput)
	}
}

func TestExportPropagatesRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: domain.ErrRenderFailed}
	service := newTestService(renderer, t.TempDir())

	exam, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 1",
		DurationLabel: "15 phút (30 câu)",
		TestType:      domain.TestTypeMultipleChoice,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := service.Export(context.Background(), exam); !errors.Is(err, domain.ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{result: &render.Result{Bytes: []byte("%PDF-fake"), PageCount: 1}}
	service := newTestService(renderer, filepath.Join(dir, "nested", "exports"))

	exam, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 2",
		DurationLabel: "60 phút (50 câu)",
		TestType:      domain.TestTypeEssay,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	export, err := service.Export(context.Background(), exam)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	path, err := service.WriteExport(export)
	if err != nil {
		t.Fatalf("write export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "%PDF-fake" {
		t.Fatalf("export content %q", data)
	}
}

func TestPreviewText(t *testing.T) {
	service := newTestService(&fakeRenderer{}, t.TempDir())

	exam, err := service.Build(context.Background(), app.BuildRequest{
		GradeLabel:    "Lớp 5",
		DurationLabel: "15 phút (30 câu)",
		TestType:      domain.TestTypeMixed,
		EssayPercent:  50,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	preview := service.PreviewText(exam)
	if !strings.Contains(preview, "Mỗi câu hỏi: 3.33 điểm") {
		t.Fatalf("preview lacks score line:\n%s", preview)
	}
	if !strings.Contains(preview, "A. ") || !strings.Contains(preview, " | B. ") {
		t.Fatalf("preview lacks option row:\n%s", preview)
	}
	if !strings.Contains(preview, "(Khoảng trống trả lời)") {
		t.Fatalf("preview lacks essay marker:\n%s", preview)
	}
}
