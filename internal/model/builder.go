package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/document"
)

var errDocumentMissing = errors.New("model builder: document is required")

// Builder converts form documents into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options; zero fields fall back to
// the defaults.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Sanitizer != nil {
		opts.Sanitizer = options.Sanitizer
	}
	return &Builder{opts: opts}
}

// Build projects doc into a FormModel identified by formID. Question order is
// preserved and every field is named after its question id.
func (b *Builder) Build(formID string, doc *document.Document) (FormModel, error) {
	if doc == nil {
		return FormModel{}, errDocumentMissing
	}
	if err := doc.Validate(); err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}

	form := FormModel{
		ID:     strings.TrimSpace(formID),
		Title:  b.opts.Sanitizer.Text(doc.Title),
		Fields: make([]Field, 0, len(doc.Questions)),
		Metadata: map[string]string{
			"questions": strconv.Itoa(len(doc.Questions)),
		},
	}
	if form.Title == "" {
		form.Title = document.DefaultTitle
	}

	for idx, q := range doc.Questions {
		form.Fields = append(form.Fields, b.fieldFromQuestion(idx, q))
	}
	return form, nil
}

func (b *Builder) fieldFromQuestion(position int, q document.Question) Field {
	field := Field{
		Name:     q.ID,
		Type:     FieldTypeString,
		Required: q.Required,
		Label:    b.opts.Sanitizer.Text(q.Label),
		Metadata: map[string]string{
			MetaQuestionType: string(q.Type),
			MetaPosition:     strconv.Itoa(position),
		},
		UIHints: map[string]string{},
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(string(q.Type))
	}

	switch q.Type {
	case document.QuestionTypeTextarea:
		field.Format = FormatTextarea
		field.UIHints["input"] = "textarea"
	case document.QuestionTypeNumber:
		field.Type = FieldTypeNumber
		field.UIHints["inputType"] = "number"
	case document.QuestionTypeFile:
		field.Format = FormatBinary
		field.UIHints["inputType"] = "file"
	case document.QuestionTypeMultipleChoice, document.QuestionTypeDropdown:
		field.Enum = b.options(q.Options)
	default:
		field.UIHints["inputType"] = "text"
	}

	if len(field.UIHints) == 0 {
		field.UIHints = nil
	}
	return field
}

// options sanitises and de-duplicates choice labels, dropping blanks.
func (b *Builder) options(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, opt := range raw {
		cleaned := b.opts.Sanitizer.Text(opt)
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
