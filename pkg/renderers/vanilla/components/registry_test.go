package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, field model.Field, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor(" TEST ")
	if !ok {
		t.Fatalf("descriptor not found")
	}
	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if diff := cmp.Diff([]string{"/a.css"}, original.Stylesheets); diff != "" {
		t.Fatalf("registry descriptor mutated (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register("  ", Descriptor{Renderer: func(*bytes.Buffer, model.Field, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("input", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryStylesheetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, field model.Field, data ComponentData) error { return nil }

	reg.MustRegister("text", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/text.css"}})
	reg.MustRegister("select", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/select.css"}})

	got := reg.Stylesheets([]string{"text", "missing", "select"})
	want := []string{"/shared.css", "/text.css", "/select.css"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistryCoversEveryWidget(t *testing.T) {
	want := []string{NameFile, NameNumber, NameRadio, NameSelect, NameText, NameTextarea}
	got := NewDefaultRegistry().Names()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default components mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateComponentRendererPayload(t *testing.T) {
	tpl := &capturingTemplate{}
	desc, _ := NewDefaultRegistry().Descriptor(NameRadio)

	var buf bytes.Buffer
	err := desc.Renderer(&buf, model.Field{Name: "q3", Enum: []string{"Red", "Blue"}}, ComponentData{
		Template:      tpl,
		ControlID:     "fb-q3",
		Value:         "Blue",
		ThemePartials: map[string]string{PartialRadio: "themes/acme/radio.tmpl"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if tpl.name != "themes/acme/radio.tmpl" {
		t.Fatalf("theme partial not applied: %q", tpl.name)
	}
	if buf.String() != "ok" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	options := tpl.data["options"].([]map[string]any)
	want := []map[string]any{
		{"id": "fb-q3-0", "value": "Red", "selected": false},
		{"id": "fb-q3-1", "value": "Blue", "selected": true},
	}
	if diff := cmp.Diff(want, options); diff != "" {
		t.Fatalf("options payload mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateComponentRendererRequiresTemplate(t *testing.T) {
	desc, _ := NewDefaultRegistry().Descriptor(NameText)
	err := desc.Renderer(&bytes.Buffer{}, model.Field{Name: "q1"}, ComponentData{})
	if err == nil || !strings.Contains(err.Error(), "template renderer not configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

type capturingTemplate struct {
	name string
	data map[string]any
}

func (c *capturingTemplate) Render(name string, data any, out ...io.Writer) (string, error) {
	return c.RenderTemplate(name, data, out...)
}

func (c *capturingTemplate) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	c.name = name
	c.data, _ = data.(map[string]any)
	return "ok", nil
}

func (c *capturingTemplate) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (c *capturingTemplate) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (c *capturingTemplate) GlobalContext(any) error {
	return nil
}
