package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions: it walks the
// form as a respondent would, prompting once per question in order, and
// returns the collected answers keyed by question id.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	checkFile         FileChecker
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		checkFile:    statFile,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the answers. Prefilled
// values become prompt defaults and server errors are printed before the
// matching prompt.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, msg := range opts.FormErrors {
		if err := r.driver.Info(ctx, "! "+msg); err != nil {
			return nil, err
		}
	}
	if len(form.Fields) == 0 {
		if err := r.driver.Info(ctx, render.Chrome(opts, render.MsgEmpty)); err != nil {
			return nil, err
		}
	}

	answers := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		for _, msg := range opts.Errors[field.Name] {
			if err := r.driver.Info(ctx, fmt.Sprintf("! %s: %s", displayLabel(field), msg)); err != nil {
				return nil, err
			}
		}
		value, err := r.promptField(ctx, field, opts.Values[field.Name])
		if err != nil {
			return nil, err
		}
		if value != nil {
			answers[field.Name] = value
		}
	}

	if r.submitTransformer != nil {
		var err error
		answers, err = r.submitTransformer(answers)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, answers)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, prefill any) (any, error) {
	switch {
	case len(field.Enum) > 0:
		return r.promptChoice(ctx, field, prefill)
	case field.Type == model.FieldTypeNumber:
		return r.promptNumber(ctx, field, prefill)
	case field.Format == model.FormatBinary:
		return r.promptFile(ctx, field, prefill)
	case field.Format == model.FormatTextarea || field.UIHints["input"] == "textarea":
		return r.promptTextArea(ctx, field, prefill)
	default:
		return r.promptText(ctx, field, prefill)
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, prefill any) (any, error) {
	cfg := InputConfig{
		Message: displayLabel(field),
		Default: stringValue(prefill),
		Help:    displayHelp(field),
	}
	return r.ask(ctx, field, func() (string, error) { return r.driver.Input(ctx, cfg) }, nil)
}

func (r *Renderer) promptTextArea(ctx context.Context, field model.Field, prefill any) (any, error) {
	cfg := TextAreaConfig{
		Message: displayLabel(field),
		Default: stringValue(prefill),
		Help:    displayHelp(field),
	}
	return r.ask(ctx, field, func() (string, error) { return r.driver.TextArea(ctx, cfg) }, nil)
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, prefill any) (any, error) {
	cfg := InputConfig{
		Message: displayLabel(field),
		Default: stringValue(prefill),
		Help:    displayHelp(field),
	}
	parse := func(raw string) (any, error) {
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return n, nil
	}
	return r.ask(ctx, field, func() (string, error) { return r.driver.Input(ctx, cfg) }, parse)
}

func (r *Renderer) promptFile(ctx context.Context, field model.Field, prefill any) (any, error) {
	cfg := InputConfig{
		Message: displayLabel(field) + " (path)",
		Default: stringValue(prefill),
		Help:    displayHelp(field),
	}
	check := func(raw string) (any, error) {
		path := strings.TrimSpace(raw)
		if err := r.checkFile(path); err != nil {
			return nil, err
		}
		return path, nil
	}
	return r.ask(ctx, field, func() (string, error) { return r.driver.Input(ctx, cfg) }, check)
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field, prefill any) (any, error) {
	options := append([]string{}, field.Enum...)
	offset := 0
	if !field.Required {
		// Optional choices get an explicit skip entry.
		options = append([]string{"(skip)"}, options...)
		offset = 1
	}
	defaultIdx := indexOf(options, stringValue(prefill))
	if defaultIdx < 0 {
		defaultIdx = 0
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	if idx < offset || idx >= len(options) {
		return nil, nil
	}
	return options[idx], nil
}

// ask runs prompt until it yields an acceptable answer. Blank answers to
// optional questions are skipped; parse converts and validates the rest.
func (r *Renderer) ask(ctx context.Context, field model.Field, prompt func() (string, error), parse func(string) (any, error)) (any, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		raw, err := prompt()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(raw) == "" {
			if !field.Required {
				return nil, nil
			}
			_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
			continue
		}
		if parse == nil {
			return raw, nil
		}
		value, err := parse(raw)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", displayLabel(field), err))
			continue
		}
		return value, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func (r *Renderer) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, stringValue(value))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		return json.Marshal(values)
	}
}

// prettyPrint lists answers in form order, then any extra keys sorted.
func prettyPrint(form model.FormModel, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		seen[field.Name] = struct{}{}
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), stringValue(value))
	}
	extra := make([]string, 0)
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s: %s\n", key, stringValue(values[key]))
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.UIHints["helpText"]; h != "" {
		return h
	}
	return field.Description
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func statFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %q", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory", path)
	}
	return nil
}
