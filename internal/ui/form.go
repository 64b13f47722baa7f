package ui

// field identifies one focusable form element, top to bottom.
type field int

const (
	fieldGrade field = iota
	fieldDuration
	fieldType
	fieldEssayPct
	fieldGenerate
	fieldExport
	fieldCount
)

// visible reports whether a field can take focus in the current form state.
// The essay slider only exists for mixed exams; export needs a built exam.
func visible(f field, mixed, hasExam bool) bool {
	switch f {
	case fieldEssayPct:
		return mixed
	case fieldExport:
		return hasExam
	default:
		return true
	}
}

func nextField(f field, mixed, hasExam bool) field {
	for i := 0; i < int(fieldCount); i++ {
		f = field((int(f) + 1) % int(fieldCount))
		if visible(f, mixed, hasExam) {
			return f
		}
	}
	return f
}

func prevField(f field, mixed, hasExam bool) field {
	for i := 0; i < int(fieldCount); i++ {
		f = field((int(f) - 1 + int(fieldCount)) % int(fieldCount))
		if visible(f, mixed, hasExam) {
			return f
		}
	}
	return f
}
