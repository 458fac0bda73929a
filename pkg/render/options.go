package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action is the submission target. Renderers fall back to
	// "/form/{id}/responses" when empty.
	Action string
	// Values pre-populates rendered controls keyed by question id.
	Values map[string]any
	// Errors surfaces validation feedback keyed by question id. Use
	// MapErrorPayload to normalise pointer-style keys first.
	Errors map[string][]string
	// FormErrors are messages that do not belong to a single question.
	FormErrors []string
	// Hidden adds hidden inputs (CSRF tokens, versions) to the submission.
	Hidden map[string]string
	// Theme carries resolved tokens, CSS variables and asset URLs.
	Theme *theme.RendererConfig
	// Locale and Translator localise renderer chrome such as the submit
	// button. Question text is authored content and is never translated.
	Locale     string
	Translator Translator
}
