package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"examgen/internal/domain"
	"examgen/internal/render"
)

// QuestionGenerator produces the question list for one exam.
type QuestionGenerator interface {
	Generate(cfg domain.GenerationConfig) ([]domain.Question, error)
}

// DocumentRenderer serializes an exam into a paginated document.
type DocumentRenderer interface {
	Render(ctx context.Context, in render.Input) (*render.Result, error)
}

// BuildRequest is the configuration surface one user interaction fills in.
type BuildRequest struct {
	GradeLabel    string
	DurationLabel string
	TestType      domain.TestType
	// EssayPercent only applies when TestType is mixed.
	EssayPercent float64
}

// Exam is the explicit per-interaction context carried from generation to
// preview and export. It replaces ambient session state: the lifetime is one
// user action, nothing is persisted.
type Exam struct {
	ID               string
	GradeLabel       string
	DurationLabel    string
	TestType         domain.TestType
	EssayPercent     float64
	TotalQuestions   int
	ScorePerQuestion float64
	Questions        []domain.Question
	CreatedAt        time.Time
}

// ExportResult holds the finished document and its download metadata.
type ExportResult struct {
	Filename     string
	Bytes        []byte
	PageCount    int
	DegradedFont bool
}

// Options tunes caller policy for the service.
type Options struct {
	// RequireUnicodeFont makes export fail instead of degrading when no
	// Unicode font can be provisioned.
	RequireUnicodeFont bool
	// OutputDir is where WriteExport places documents.
	OutputDir string
}

// ExamService contains the generate/preview/export use cases.
type ExamService struct {
	generator QuestionGenerator
	renderer  DocumentRenderer
	opts      Options
	log       *zap.Logger
	now       func() time.Time
}

func NewExamService(generator QuestionGenerator, renderer DocumentRenderer, opts Options, log *zap.Logger) *ExamService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "exports"
	}
	return &ExamService{
		generator: generator,
		renderer:  renderer,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

// Build validates the request against the catalogs and generates the exam.
func (s *ExamService) Build(_ context.Context, req BuildRequest) (*Exam, error) {
	if !domain.ValidGrade(req.GradeLabel) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGrade, req.GradeLabel)
	}
	duration, err := domain.DurationByLabel(req.DurationLabel)
	if err != nil {
		return nil, err
	}

	cfg := domain.GenerationConfig{
		GradeLabel:      req.GradeLabel,
		TotalQuestions:  duration.Questions,
		EssayPercentage: req.TestType.EssayPercent(req.EssayPercent),
	}
	questions, err := s.generator.Generate(cfg)
	if err != nil {
		return nil, err
	}

	exam := &Exam{
		ID:               uuid.NewString(),
		GradeLabel:       req.GradeLabel,
		DurationLabel:    req.DurationLabel,
		TestType:         req.TestType,
		EssayPercent:     cfg.EssayPercentage,
		TotalQuestions:   duration.Questions,
		ScorePerQuestion: float64(domain.TotalScore) / float64(duration.Questions),
		Questions:        questions,
		CreatedAt:        s.now(),
	}
	s.log.Info("generated exam",
		zap.String("exam_id", exam.ID),
		zap.String("grade", exam.GradeLabel),
		zap.Int("questions", exam.TotalQuestions),
		zap.Float64("essay_pct", exam.EssayPercent))
	return exam, nil
}

// Export renders the exam to PDF bytes with the download filename.
func (s *ExamService) Export(ctx context.Context, exam *Exam) (*ExportResult, error) {
	result, err := s.renderer.Render(ctx, render.Input{
		Questions:          exam.Questions,
		GradeLabel:         exam.GradeLabel,
		DurationLabel:      exam.DurationLabel,
		ScorePerQuestion:   exam.ScorePerQuestion,
		RequireUnicodeFont: s.opts.RequireUnicodeFont,
	})
	if err != nil {
		s.log.Error("export failed", zap.String("exam_id", exam.ID), zap.Error(err))
		return nil, err
	}

	export := &ExportResult{
		Filename:     ExportFilename(exam.GradeLabel, exam.TotalQuestions),
		Bytes:        result.Bytes,
		PageCount:    result.PageCount,
		DegradedFont: result.DegradedFont,
	}
	s.log.Info("exported exam",
		zap.String("exam_id", exam.ID),
		zap.String("filename", export.Filename),
		zap.Int("pages", export.PageCount))
	return export, nil
}

// WriteExport places the document under the configured output directory and
// returns the full path.
func (s *ExamService) WriteExport(export *ExportResult) (string, error) {
	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.opts.OutputDir, export.Filename)
	if err := os.WriteFile(path, export.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

// PreviewText renders the exam as plain text for terminal preview.
func (s *ExamService) PreviewText(exam *Exam) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mỗi câu hỏi: %.2f điểm\n\n", exam.ScorePerQuestion)
	for _, q := range exam.Questions {
		sb.WriteString(q.Text())
		sb.WriteByte('\n')
		if q.Kind() == domain.KindMultipleChoice {
			opts := q.Options()
			parts := make([]string, 0, len(opts))
			for i, opt := range opts {
				parts = append(parts, fmt.Sprintf("%c. %s", 'A'+rune(i), opt))
			}
			sb.WriteString(strings.Join(parts, " | "))
		} else {
			sb.WriteString("(Khoảng trống trả lời)")
		}
		sb.WriteString("\n---\n")
	}
	return sb.String()
}

// ExportFilename embeds the grade label and question count, with spaces made
// filesystem-friendly.
func ExportFilename(gradeLabel string, totalQuestions int) string {
	grade := strings.ReplaceAll(gradeLabel, " ", "_")
	return fmt.Sprintf("De_Thi_%s_%dcau.pdf", grade, totalQuestions)
}
