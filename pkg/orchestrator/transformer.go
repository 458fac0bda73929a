package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Transformer mutates a FormModel before decorators run. Implementations can
// inject metadata, reword labels, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document. Field patches are keyed by question id:
//
//	description: Tell us how we did
//	metadata:
//	  campaign: spring
//	fields:
//	  q1:
//	    placeholder: Jane Doe
//	    description: As printed on your badge
type PresetTransformer struct {
	preset preset
}

type preset struct {
	Title       string                `yaml:"title"`
	Description string                `yaml:"description"`
	Metadata    map[string]string     `yaml:"metadata"`
	UIHints     map[string]string     `yaml:"uiHints"`
	Fields      map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Placeholder string            `yaml:"placeholder"`
	Metadata    map[string]string `yaml:"metadata"`
	UIHints     map[string]string `yaml:"uiHints"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var doc preset
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{preset: doc}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto form. A patch naming a question the form
// does not contain is an error so stale presets surface early.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.preset.Title != "" {
		form.Title = t.preset.Title
	}
	if t.preset.Description != "" {
		form.Description = t.preset.Description
	}
	form.Metadata = mergeStringMap(form.Metadata, t.preset.Metadata)
	form.UIHints = mergeStringMap(form.UIHints, t.preset.UIHints)

	for id, patch := range t.preset.Fields {
		field := findField(form.Fields, id)
		if field == nil {
			return fmt.Errorf("preset transformer: question %q not found", id)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
	field.UIHints = mergeStringMap(field.UIHints, patch.UIHints)
}

func findField(fields []model.Field, id string) *model.Field {
	id = strings.TrimSpace(id)
	for idx := range fields {
		if fields[idx].Name == id {
			return &fields[idx]
		}
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
