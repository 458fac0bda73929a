package model

import (
	"github.com/goliatone/go-formbuilder/internal/model"
	"github.com/goliatone/go-formbuilder/pkg/document"
)

// Builder converts form documents into form models.
type Builder interface {
	Build(formID string, doc *document.Document) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler   func(string) string
	sanitizer Sanitizer
}

// WithLabeler overrides the label used for questions with a blank label.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithSanitizer replaces the bluemonday sanitizer applied to user text.
func WithSanitizer(s Sanitizer) BuilderOption {
	return func(opts *builderOptions) {
		opts.sanitizer = s
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Labeler:   cfg.labeler,
		Sanitizer: cfg.sanitizer,
	})
}
