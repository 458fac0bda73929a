package tui

// OutputFormat controls how collected answers are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

const defaultMaxAttempts = 3

// SubmitTransformer mutates collected answers before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// FileChecker validates a path typed for a file question.
type FileChecker func(path string) error

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected answers prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithFileChecker replaces the os.Stat based check for file answers.
func WithFileChecker(fn FileChecker) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.checkFile = fn
		}
	}
}

// WithMaxAttempts bounds how often an invalid answer is re-asked.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}
