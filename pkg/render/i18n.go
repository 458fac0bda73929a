package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MapTranslator is a static Translator keyed by locale then message key.
type MapTranslator map[string]map[string]string

// Translate implements Translator. Format verbs in the message are expanded
// with args.
func (m MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	messages, ok := m[locale]
	if !ok {
		return "", fmt.Errorf("render: locale %q not found", locale)
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("render: key %q not found for %q", key, locale)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

// Chrome message keys.
const (
	MsgSubmit   = "form.submit"
	MsgRequired = "form.required"
	MsgChoose   = "form.choose"
	MsgEmpty    = "form.empty"
)

type chromeEntry struct {
	key      string
	alias    string
	fallback string
}

var chromeEntries = []chromeEntry{
	{key: MsgSubmit, alias: "submit", fallback: "Submit"},
	{key: MsgRequired, alias: "required", fallback: "Required"},
	{key: MsgChoose, alias: "choose", fallback: "Select an option"},
	{key: MsgEmpty, alias: "empty", fallback: "This form has no questions yet."},
}

// Chrome returns the localised renderer string for key, falling back to the
// built-in English text.
func Chrome(opts RenderOptions, key string) string {
	fallback := key
	for _, entry := range chromeEntries {
		if entry.key == key {
			fallback = entry.fallback
			break
		}
	}
	if opts.Translator == nil {
		return fallback
	}
	msg, err := opts.Translator.Translate(opts.Locale, key)
	if err != nil || strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// ChromeStrings resolves every chrome key at once for template contexts,
// keyed by short alias ("submit", "required", "choose", "empty").
func ChromeStrings(opts RenderOptions) map[string]string {
	out := make(map[string]string, len(chromeEntries))
	for _, entry := range chromeEntries {
		out[entry.alias] = Chrome(opts, entry.key)
	}
	return out
}
