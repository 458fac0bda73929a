package document

import (
	"fmt"
	"strings"
)

// QuestionType is the closed set of input kinds a question can take.
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeTextarea       QuestionType = "textarea"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeDropdown       QuestionType = "dropdown"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeFile           QuestionType = "file"
)

var paletteLabels = map[QuestionType]string{
	QuestionTypeText:           "Text",
	QuestionTypeTextarea:       "Long Text",
	QuestionTypeMultipleChoice: "Multiple Choice",
	QuestionTypeDropdown:       "Dropdown",
	QuestionTypeNumber:         "Number",
	QuestionTypeFile:           "File Upload",
}

// QuestionTypes returns the palette in display order.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionTypeText,
		QuestionTypeTextarea,
		QuestionTypeMultipleChoice,
		QuestionTypeDropdown,
		QuestionTypeNumber,
		QuestionTypeFile,
	}
}

// Valid reports whether t belongs to the enumeration.
func (t QuestionType) Valid() bool {
	_, ok := paletteLabels[t]
	return ok
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeDropdown
}

// Label returns the palette label shown next to the add button.
func (t QuestionType) Label() string {
	if label, ok := paletteLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t QuestionType) String() string {
	return string(t)
}

// ParseQuestionType normalises raw input (case, surrounding space, dashes) and
// returns the matching type.
func ParseQuestionType(raw string) (QuestionType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	t := QuestionType(normalized)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuestionType, raw)
	}
	return t, nil
}

// DefaultOptions returns a fresh copy of the placeholder options seeded on
// choice questions.
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2"}
}
