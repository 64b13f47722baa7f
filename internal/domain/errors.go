package domain

import "errors"

var (
	// ErrInvalidConfig is returned when a generation request falls outside the allowed ranges.
	ErrInvalidConfig = errors.New("invalid generation config")
	// ErrFontUnavailable indicates no Unicode font could be provisioned (no cache, no system font, download failed).
	ErrFontUnavailable = errors.New("unicode font unavailable")
	// ErrRenderFailed indicates the PDF build failed and no document was produced.
	ErrRenderFailed = errors.New("document render failed")
	// ErrUnknownGrade indicates a grade label outside the predefined catalog.
	ErrUnknownGrade = errors.New("unknown grade")
	// ErrUnknownDuration indicates a duration outside the predefined catalog.
	ErrUnknownDuration = errors.New("unknown duration")
)
