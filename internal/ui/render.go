package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Width(20)
	focusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("📝 English Test Generator"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderRow(fieldGrade, "Lớp", m.grades[m.gradeIdx]))
	sb.WriteString(m.renderRow(fieldDuration, "Thời gian & Số câu", m.durations[m.durationIdx].Label))
	sb.WriteString(m.renderRow(fieldType, "Loại đề thi", m.types[m.typeIdx].Label()))
	if m.mixed() {
		sb.WriteString(m.renderRow(fieldEssayPct, "Tỷ lệ Tự luận (%)", renderSlider(m.essayPct)))
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  Trắc nghiệm: %d%% | Tự luận: %d%%", 100-m.essayPct, m.essayPct)))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	sb.WriteString(m.renderButton(fieldGenerate, "Tạo đề thi"))
	if m.exam != nil {
		sb.WriteString("  ")
		sb.WriteString(m.renderButton(fieldExport, "Xuất file PDF"))
	}
	sb.WriteByte('\n')

	if line := m.renderStatus(); line != "" {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if m.exam != nil {
		sb.WriteString(dimStyle.Render("Xem trước đề thi (PgUp/PgDn để cuộn)"))
		sb.WriteByte('\n')
		sb.WriteString(previewStyle.Render(m.preview.View()))
		sb.WriteByte('\n')
	}

	sb.WriteString(dimStyle.Render("↑/↓ chọn mục · ←/→ đổi giá trị · Enter thực hiện · q thoát"))
	return sb.String()
}

func (m Model) renderRow(f field, label, value string) string {
	cursor := "  "
	rendered := value
	if m.focus == f {
		cursor = focusStyle.Render("▸ ")
		rendered = focusStyle.Render("◀ " + value + " ▶")
	}
	return cursor + labelStyle.Render(label) + rendered + "\n"
}

func (m Model) renderButton(f field, label string) string {
	if m.focus == f {
		return focusStyle.Render("[ " + label + " ]")
	}
	return "[ " + label + " ]"
}

func (m Model) renderStatus() string {
	switch m.status.kind {
	case statusInfo:
		return infoStyle.Render(m.status.text)
	case statusWarn:
		return warnStyle.Render(m.status.text)
	case statusError:
		return errStyle.Render("Lỗi: " + m.status.text)
	default:
		return ""
	}
}

// renderSlider shows the percentage as a coarse bar plus the number.
func renderSlider(pct int) string {
	const width = 20
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

// formHeight is the vertical space the form chrome needs above the preview.
func formHeight(m Model) int {
	h := 10
	if m.mixed() {
		h += 2
	}
	return h
}
