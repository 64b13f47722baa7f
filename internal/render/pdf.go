// Package render builds the printable exam PDF: A4 portrait, millimetre
// units, one footer per page, page breaks kept outside question blocks.
package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"examgen/internal/domain"
)

const (
	// targetFontFamily is the internal family name the Unicode font is
	// registered under. Registration must precede the first AddPage because
	// the footer hook fires on every page creation.
	targetFontFamily   = "TargetFont"
	fallbackFontFamily = "Helvetica"

	footerText = "TS. Nguyễn Trung Hòa - CEO AIGiaoDuc.vn - HotLine / Zalo: 0888186788"

	titleFontSize  = 16
	metaFontSize   = 12
	bodyFontSize   = 11
	footerFontSize = 8

	lineHeight = 6
	cellHeight = 10

	// pageBreakY is the vertical threshold past which a new question block
	// starts on a fresh page instead of splitting across the margin.
	pageBreakY = 250

	optionIndent    = 20
	optionGap       = 2
	essaySpace      = 30
	essayRuleRightX = 190
	essayGap        = 5
	titleGap        = 5
)

var optionLabels = []string{"A", "B", "C", "D"}

// sanitizer replaces the unicode punctuation the template pools are known to
// pick up from copy-paste with ASCII equivalents.
var sanitizer = strings.NewReplacer("–", "-", "’", "'")

// FontProvisioner yields the path of a usable Unicode font file.
type FontProvisioner interface {
	Ensure(ctx context.Context) (string, error)
}

// Input is everything one render needs; the caller owns the derivations.
type Input struct {
	Questions        []domain.Question
	GradeLabel       string
	DurationLabel    string
	ScorePerQuestion float64
	// RequireUnicodeFont aborts instead of degrading to the built-in
	// Helvetica when no Unicode font can be provisioned.
	RequireUnicodeFont bool
}

// Result is the finalized document; the renderer keeps no state between runs.
type Result struct {
	Bytes     []byte
	PageCount int
	// DegradedFont is set when the document was built with the built-in
	// fallback family and Vietnamese text may not display correctly.
	DegradedFont bool
}

// Renderer turns question lists into PDF bytes.
type Renderer struct {
	fonts FontProvisioner
	log   *zap.Logger
}

func New(fonts FontProvisioner, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{fonts: fonts, log: log}
}

// Render produces the exam document. A failure discards the in-progress
// document entirely; there is no partial output.
func (r *Renderer) Render(ctx context.Context, in Input) (*Result, error) {
	family := targetFontFamily
	degraded := false

	fontPath, fontErr := r.fonts.Ensure(ctx)
	if fontErr != nil {
		if in.RequireUnicodeFont {
			return nil, fontErr
		}
		r.log.Warn("rendering with fallback font, Vietnamese text may be garbled", zap.Error(fontErr))
		family = fallbackFontFamily
		degraded = true
	}

	fontDir := ""
	fontFile := ""
	if !degraded {
		fontDir = filepath.Dir(fontPath)
		fontFile = filepath.Base(fontPath)
	}

	doc := fpdf.New("P", "mm", "A4", fontDir)
	if !degraded {
		doc.AddUTF8Font(targetFontFamily, "", fontFile)
		if doc.Err() {
			return nil, fmt.Errorf("register font %q: %v: %w", fontPath, doc.Error(), domain.ErrRenderFailed)
		}
	}

	// The footer hook runs on AddPage, so the family decision above is the
	// ordering contract that keeps it valid on every page.
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont(family, "", footerFontSize)
		doc.CellFormat(0, cellHeight, footerText, "", 0, "R", false, 0, "")
	})

	doc.AddPage()
	doc.SetFont(family, "", titleFontSize)
	doc.CellFormat(0, cellHeight, fmt.Sprintf("ĐỀ THI TIẾNG ANH - %s", strings.ToUpper(in.GradeLabel)),
		"", 1, "C", false, 0, "")
	doc.SetFont(family, "", metaFontSize)
	doc.CellFormat(0, cellHeight, fmt.Sprintf("Thời gian: %s | Tổng điểm: %d", in.DurationLabel, domain.TotalScore),
		"", 1, "C", false, 0, "")
	doc.Ln(titleGap)

	doc.SetFont(family, "", bodyFontSize)
	pointText := fmt.Sprintf("%.2f điểm", in.ScorePerQuestion)

	for _, q := range in.Questions {
		if doc.GetY() > pageBreakY {
			doc.AddPage()
		}
		doc.SetFont(family, "", bodyFontSize)

		text := sanitizer.Replace(q.Text())
		doc.MultiCell(0, lineHeight, fmt.Sprintf("%s ([%s])", text, pointText), "", "L", false)

		switch q.Kind() {
		case domain.KindMultipleChoice:
			doc.Ln(-1)
			if doc.GetY() > pageBreakY {
				doc.AddPage()
				doc.SetFont(family, "", bodyFontSize)
			}
			doc.SetX(optionIndent)
			doc.MultiCell(0, lineHeight, optionsLine(q.Options()), "", "L", false)
			doc.Ln(optionGap)
		case domain.KindEssay:
			doc.Ln(essaySpace)
			x, y := doc.GetXY()
			doc.Line(x, y, essayRuleRightX, y)
			doc.Ln(essayGap)
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("build document: %v: %w", doc.Error(), domain.ErrRenderFailed)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %v: %w", err, domain.ErrRenderFailed)
	}

	result := &Result{
		Bytes:        buf.Bytes(),
		PageCount:    doc.PageCount(),
		DegradedFont: degraded,
	}
	r.log.Info("rendered exam document",
		zap.Int("questions", len(in.Questions)),
		zap.Int("pages", result.PageCount),
		zap.Bool("degraded_font", degraded))
	return result, nil
}

// optionsLine lays the four choices out on one wrapped line with the fixed
// A–D labels and spacing.
func optionsLine(options []string) string {
	var sb strings.Builder
	for i, opt := range options {
		if i < len(optionLabels) {
			sb.WriteString(optionLabels[i])
		}
		sb.WriteString(". ")
		sb.WriteString(opt)
		sb.WriteString("      ")
	}
	return sb.String()
}
