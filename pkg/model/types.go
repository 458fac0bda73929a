package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeNumber = internalmodel.FieldTypeNumber
)

const (
	FormatTextarea   = internalmodel.FormatTextarea
	FormatBinary     = internalmodel.FormatBinary
	MetaQuestionType = internalmodel.MetaQuestionType
	MetaPosition     = internalmodel.MetaPosition
)

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
type Sanitizer = internalmodel.Sanitizer

// NewSanitizer returns the shared bluemonday backed sanitizer.
func NewSanitizer() Sanitizer {
	return internalmodel.NewSanitizer()
}

// DefaultLabeler turns identifiers such as "multiple_choice" into
// "Multiple Choice".
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
