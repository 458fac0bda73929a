package model

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user-authored text before it reaches a renderer.
type Sanitizer interface {
	// Text strips all markup; used for titles, labels and options.
	Text(string) string
	// Rich keeps a small set of formatting tags; used for descriptions.
	Rich(string) string
}

type policySanitizer struct {
	strict *bluemonday.Policy
	rich   *bluemonday.Policy
}

var (
	sharedOnce      sync.Once
	sharedSanitizer *policySanitizer
)

// NewSanitizer returns the bluemonday backed sanitizer. Policies are built
// once and shared; bluemonday policies are safe for concurrent use.
func NewSanitizer() Sanitizer {
	sharedOnce.Do(func() {
		rich := bluemonday.NewPolicy()
		rich.AllowElements("p", "br", "strong", "em", "b", "i", "ul", "ol", "li", "code")
		rich.AllowStandardURLs()
		rich.AllowAttrs("href").OnElements("a")
		rich.RequireNoFollowOnLinks(true)

		sharedSanitizer = &policySanitizer{
			strict: bluemonday.StrictPolicy(),
			rich:   rich,
		}
	})
	return sharedSanitizer
}

// Text returns plain text. The strict policy escapes entities on output, so
// they are decoded again to keep the template engine the single escaper.
func (s *policySanitizer) Text(raw string) string {
	cleaned := s.strict.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func (s *policySanitizer) Rich(raw string) string {
	return strings.TrimSpace(s.rich.Sanitize(raw))
}
