// Package ui renders the interactive configuration form using Bubble Tea.
// One exam "session" lives from a generate action to the next: the built exam
// is held in the model, previewed in a viewport, and exported on demand.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"examgen/internal/app"
	"examgen/internal/domain"
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarn
	statusError
)

type status struct {
	kind statusKind
	text string
}

// Model holds the form state and the current exam session.
type Model struct {
	service *app.ExamService

	grades    []string
	durations []domain.Duration
	types     []domain.TestType

	gradeIdx    int
	durationIdx int
	typeIdx     int
	essayPct    int

	focus   field
	exam    *app.Exam
	preview viewport.Model
	status  status

	width  int
	height int
	busy   bool
}

// NewModel builds the form with catalog defaults.
func NewModel(service *app.ExamService) Model {
	vp := viewport.New(80, 12)
	return Model{
		service:   service,
		grades:    domain.Grades(),
		durations: domain.Durations(),
		types: []domain.TestType{
			domain.TestTypeMultipleChoice,
			domain.TestTypeEssay,
			domain.TestTypeMixed,
		},
		essayPct: domain.DefaultMixedEssayPercent,
		focus:    fieldGrade,
		preview:  vp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.preview.Width = max(typed.Width-4, 20)
		m.preview.Height = max(typed.Height-formHeight(m), 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)

	case examBuiltMsg:
		m.busy = false
		m.exam = typed.exam
		m.preview.SetContent(typed.preview)
		m.preview.GotoTop()
		m.status = status{kind: statusInfo, text: "Đã tạo đề thi " + typed.exam.GradeLabel}
		return m, nil

	case exportDoneMsg:
		m.busy = false
		saved := fmt.Sprintf("Đã lưu %s (%d trang)", typed.path, typed.pages)
		if typed.degraded {
			m.status = status{kind: statusWarn, text: saved + ", font dự phòng, tiếng Việt có thể sai"}
		} else {
			m.status = status{kind: statusInfo, text: saved}
		}
		return m, nil

	case errMsg:
		m.busy = false
		m.status = status{kind: statusError, text: typed.err.Error()}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.focus = prevField(m.focus, m.mixed(), m.exam != nil)
		return m, nil
	case "down", "j", "tab":
		m.focus = nextField(m.focus, m.mixed(), m.exam != nil)
		return m, nil
	case "left", "h":
		m = m.cycle(-1)
		return m, nil
	case "right", "l":
		m = m.cycle(1)
		return m, nil
	case "pgup":
		m.preview.HalfViewUp()
		return m, nil
	case "pgdown":
		m.preview.HalfViewDown()
		return m, nil
	case "enter", " ":
		return m.activate()
	}
	return m, nil
}

// cycle changes the focused field's value by one step in either direction.
func (m Model) cycle(dir int) Model {
	switch m.focus {
	case fieldGrade:
		m.gradeIdx = wrap(m.gradeIdx+dir, len(m.grades))
	case fieldDuration:
		m.durationIdx = wrap(m.durationIdx+dir, len(m.durations))
	case fieldType:
		m.typeIdx = wrap(m.typeIdx+dir, len(m.types))
	case fieldEssayPct:
		m.essayPct = clamp(m.essayPct+dir*domain.EssayPercentStep, 0, 100)
	}
	return m
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch m.focus {
	case fieldGenerate:
		m.busy = true
		m.status = status{kind: statusInfo, text: "Đang tạo đề thi..."}
		return m, m.buildCmd()
	case fieldExport:
		if m.exam == nil {
			m.status = status{kind: statusWarn, text: "Chưa có đề thi để xuất"}
			return m, nil
		}
		m.busy = true
		m.status = status{kind: statusInfo, text: "Đang xuất PDF..."}
		return m, m.exportCmd(m.exam)
	}
	return m, nil
}

func (m Model) mixed() bool {
	return m.types[m.typeIdx] == domain.TestTypeMixed
}

// examBuiltMsg carries a freshly generated exam with its preview text.
type examBuiltMsg struct {
	exam    *app.Exam
	preview string
}

// exportDoneMsg carries the written document path.
type exportDoneMsg struct {
	path     string
	pages    int
	degraded bool
}

type errMsg struct {
	err error
}

func (m Model) buildCmd() tea.Cmd {
	req := app.BuildRequest{
		GradeLabel:    m.grades[m.gradeIdx],
		DurationLabel: m.durations[m.durationIdx].Label,
		TestType:      m.types[m.typeIdx],
		EssayPercent:  float64(m.essayPct),
	}
	service := m.service
	return func() tea.Msg {
		exam, err := service.Build(context.Background(), req)
		if err != nil {
			return errMsg{err: err}
		}
		return examBuiltMsg{exam: exam, preview: service.PreviewText(exam)}
	}
}

func (m Model) exportCmd(exam *app.Exam) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		export, err := service.Export(context.Background(), exam)
		if err != nil {
			return errMsg{err: err}
		}
		path, err := service.WriteExport(export)
		if err != nil {
			return errMsg{err: err}
		}
		return exportDoneMsg{path: path, pages: export.PageCount, degraded: export.DegradedFont}
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
