// Package formbuilder is the top-level entry point: it re-exports the pieces
// most callers need to load a form document and render a preview without
// importing each subpackage.
package formbuilder

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Document is the form under construction.
type Document = document.Document

// Question is one input definition within a Document.
type Question = document.Question

// QuestionType enumerates the supported inputs.
type QuestionType = document.QuestionType

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// NewDocument returns a document seeded with a single required Name
// question.
func NewDocument(options ...document.Option) *Document {
	return document.NewDefault(options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds the form model for doc and renders it with the named
// renderer ("vanilla" when empty). It is the simplest entry point for callers
// that just want HTML output.
func GenerateHTML(ctx context.Context, doc *Document, formID, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:      doc,
		FormID:        formID,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
