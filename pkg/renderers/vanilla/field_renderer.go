package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	partials  map[string]string
	chrome    map[string]string

	used []string
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, widgetRegistry *widgets.Registry, partials, chrome map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if widgetRegistry == nil {
		widgetRegistry = widgets.NewRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		widgets:   widgetRegistry,
		partials:  partials,
		chrome:    chrome,
	}
}

func (r *componentRenderer) render(field model.Field, value any, errs []string) (string, error) {
	componentName, ok := r.widgets.Resolve(field)
	if !ok || componentName == "" {
		componentName = components.NameText
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	data := components.ComponentData{
		Template:      r.templates,
		ControlID:     controlID(field.Name),
		Value:         valueString(value),
		Invalid:       len(errs) > 0,
		Chrome:        r.chrome,
		ThemePartials: r.partials,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}

	r.markUsed(descriptor.Name)
	return buildFieldMarkup(field, descriptor, data, control.String(), errs), nil
}

func (r *componentRenderer) markUsed(name string) {
	for _, existing := range r.used {
		if existing == name {
			return
		}
	}
	r.used = append(r.used, name)
}

func (r *componentRenderer) stylesheets() []string {
	return r.registry.Stylesheets(r.used)
}

func buildFieldMarkup(field model.Field, descriptor components.Descriptor, data components.ComponentData, control string, errs []string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`  <div class="fb-field`)
	if cls := sanitizeClassList(field.UIHints["cssClass"]); cls != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(cls))
	}
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(descriptor.Name))
	builder.WriteString(`"`)
	if qt := field.Metadata[model.MetaQuestionType]; qt != "" {
		builder.WriteString(` data-question-type="`)
		builder.WriteString(html.EscapeString(qt))
		builder.WriteString(`"`)
	}
	if data.Invalid {
		builder.WriteString(` data-invalid="true"`)
	}
	builder.WriteString(">\n")

	if label := strings.TrimSpace(field.Label); label != "" {
		if descriptor.GroupLabel {
			builder.WriteString(`    <span id="`)
			builder.WriteString(html.EscapeString(data.ControlID))
			builder.WriteString(`-label" class="fb-label">`)
		} else {
			builder.WriteString(`    <label for="`)
			builder.WriteString(html.EscapeString(data.ControlID))
			builder.WriteString(`" class="fb-label">`)
		}
		builder.WriteString(html.EscapeString(label))
		if field.Required {
			builder.WriteString(`<span class="fb-required" title="`)
			builder.WriteString(html.EscapeString(data.Chrome["required"]))
			builder.WriteString(`"> *</span>`)
		}
		if descriptor.GroupLabel {
			builder.WriteString("</span>\n")
		} else {
			builder.WriteString("</label>\n")
		}
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if desc := strings.TrimSpace(field.Description); desc != "" {
		builder.WriteString(`    <small class="fb-description">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString("</small>\n")
	}

	if len(errs) > 0 {
		builder.WriteString(`    <ul id="`)
		builder.WriteString(html.EscapeString(data.ControlID))
		builder.WriteString(`-errors" class="fb-field-errors">`)
		for _, msg := range errs {
			builder.WriteString("<li>")
			builder.WriteString(html.EscapeString(msg))
			builder.WriteString("</li>")
		}
		builder.WriteString("</ul>\n")
	}

	builder.WriteString("  </div>\n")
	return builder.String()
}

// enctype picks multipart encoding when any file question is present.
func enctype(form model.FormModel) string {
	for _, field := range form.Fields {
		if field.Format == model.FormatBinary {
			return "multipart/form-data"
		}
	}
	return "application/x-www-form-urlencoded"
}

func hiddenPayload(fields map[string]string) []map[string]string {
	sorted := render.SortedHiddenFields(fields)
	if len(sorted) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}
