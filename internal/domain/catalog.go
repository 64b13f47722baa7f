package domain

import "fmt"

// Duration is one predefined exam length with its fixed question count.
type Duration struct {
	Label     string
	Questions int
}

// TestType selects how the exam mixes question kinds.
type TestType string

const (
	TestTypeMultipleChoice TestType = "mc"
	TestTypeEssay          TestType = "essay"
	TestTypeMixed          TestType = "mixed"
)

// DefaultMixedEssayPercent is the slider default for mixed exams.
const DefaultMixedEssayPercent = 30

// EssayPercentStep is the slider granularity for mixed exams.
const EssayPercentStep = 5

// Grades returns the ten predefined grade labels.
func Grades() []string {
	out := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		out = append(out, fmt.Sprintf("Lớp %d", i))
	}
	return out
}

// Durations returns the three predefined duration/question-count pairs.
func Durations() []Duration {
	return []Duration{
		{Label: "15 phút (30 câu)", Questions: 30},
		{Label: "60 phút (50 câu)", Questions: 50},
		{Label: "90 phút (70 câu)", Questions: 70},
	}
}

// DurationByLabel looks a duration up in the catalog.
func DurationByLabel(label string) (Duration, error) {
	for _, d := range Durations() {
		if d.Label == label {
			return d, nil
		}
	}
	return Duration{}, fmt.Errorf("%w: %q", ErrUnknownDuration, label)
}

// DurationByQuestions looks a duration up by its question count, which is the
// handier key for non-interactive callers.
func DurationByQuestions(n int) (Duration, error) {
	for _, d := range Durations() {
		if d.Questions == n {
			return d, nil
		}
	}
	return Duration{}, fmt.Errorf("%w: %d questions", ErrUnknownDuration, n)
}

// ValidGrade reports whether the label is one of the predefined grades.
func ValidGrade(label string) bool {
	for _, g := range Grades() {
		if g == label {
			return true
		}
	}
	return false
}

// ParseTestType maps a CLI/UI token to a test type.
func ParseTestType(s string) (TestType, error) {
	switch TestType(s) {
	case TestTypeMultipleChoice, TestTypeEssay, TestTypeMixed:
		return TestType(s), nil
	default:
		return "", fmt.Errorf("%w: invalid test type %q (expected mc|essay|mixed)", ErrInvalidConfig, s)
	}
}

// EssayPercent resolves the effective essay percentage for a test type.
// MC-only pins 0, essay-only pins 100, mixed uses the caller's value.
func (t TestType) EssayPercent(mixed float64) float64 {
	switch t {
	case TestTypeMultipleChoice:
		return 0
	case TestTypeEssay:
		return 100
	default:
		return mixed
	}
}

// Label returns the user-facing name of the test type.
func (t TestType) Label() string {
	switch t {
	case TestTypeMultipleChoice:
		return "Trắc nghiệm"
	case TestTypeEssay:
		return "Tự luận"
	default:
		return "Kết hợp"
	}
}
