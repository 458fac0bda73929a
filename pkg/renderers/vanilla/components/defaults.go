package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const templatePrefix = "templates/components/"

// Theme partial keys components look up in ComponentData.ThemePartials.
const (
	PartialInput    = "forms.input"
	PartialTextarea = "forms.textarea"
	PartialRadio    = "forms.radio"
	PartialSelect   = "forms.select"
	PartialFile     = "forms.file"
)

// DefaultPartials maps each partial key to its embedded template.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:    templatePrefix + "input.tmpl",
		PartialTextarea: templatePrefix + "textarea.tmpl",
		PartialRadio:    templatePrefix + "radio.tmpl",
		PartialSelect:   templatePrefix + "select.tmpl",
		PartialFile:     templatePrefix + "file.tmpl",
	}
}

// NewDefaultRegistry constructs a registry with one component per question
// type.
func NewDefaultRegistry() *Registry {
	registry := New()
	partials := DefaultPartials()

	registry.MustRegister(NameText, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, partials[PartialInput], "text"),
	})
	registry.MustRegister(NameNumber, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, partials[PartialInput], "number"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(PartialTextarea, partials[PartialTextarea], ""),
	})
	registry.MustRegister(NameRadio, Descriptor{
		Renderer:   templateComponentRenderer(PartialRadio, partials[PartialRadio], ""),
		GroupLabel: true,
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, partials[PartialSelect], ""),
	})
	registry.MustRegister(NameFile, Descriptor{
		Renderer: templateComponentRenderer(PartialFile, partials[PartialFile], "file"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName, inputType string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		payload := map[string]any{
			"field":      field,
			"id":         data.ControlID,
			"value":      data.Value,
			"invalid":    data.Invalid,
			"input_type": inputType,
			"options":    optionPayload(field, data),
			"chrome":     data.Chrome,
		}
		rendered, err := data.Template.RenderTemplate(resolved, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func optionPayload(field model.Field, data ComponentData) []map[string]any {
	if len(field.Enum) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(field.Enum))
	for idx, option := range field.Enum {
		out = append(out, map[string]any{
			"id":       fmt.Sprintf("%s-%d", data.ControlID, idx),
			"value":    option,
			"selected": option == data.Value,
		})
	}
	return out
}
