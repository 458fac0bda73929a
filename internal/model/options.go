package model

// Options configures the Builder. The public adapter in pkg/model assembles
// them and passes them to New.
type Options struct {
	Labeler   func(string) string
	Sanitizer Sanitizer
}

func defaultOptions() Options {
	return Options{
		Labeler:   DefaultLabeler,
		Sanitizer: NewSanitizer(),
	}
}
