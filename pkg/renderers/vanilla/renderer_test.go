package vanilla_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func renderSample(t *testing.T, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()

	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), testsupport.SampleForm(t, "feedback"), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_RendersEveryQuestionType(t *testing.T) {
	output := renderSample(t, render.RenderOptions{})

	assertContains(t, output,
		`<form id="fb-form-feedback" class="fb-form" method="post" action="/form/feedback/responses" enctype="multipart/form-data" data-form-id="feedback">`,
		`<h1>Customer Feedback</h1>`,
		`<label for="fb-q1" class="fb-label">Name<span class="fb-required" title="Required"> *</span></label>`,
		`<input id="fb-q1" name="q1" type="text" class="fb-input" required aria-required="true">`,
		`<textarea id="fb-q2" name="q2" rows="4" class="fb-textarea"></textarea>`,
		`<span id="fb-q3-label" class="fb-label">Question 3</span>`,
		`<input type="radio" id="fb-q3-0" name="q3" value="Option 1"> Option 1</label>`,
		`<select id="fb-q4" name="q4" class="fb-select">`,
		`<option value="">Select an option</option>`,
		`<option value="Option 2">Option 2</option>`,
		`<input id="fb-q5" name="q5" type="number" class="fb-input" step="any" inputmode="decimal">`,
		`<input id="fb-q6" name="q6" type="file" class="fb-file">`,
		`<button type="submit">Submit</button>`,
	)

	order := []string{`name="q1"`, `name="q2"`, `name="q3"`, `name="q4"`, `name="q5"`, `name="q6"`}
	last := -1
	for _, marker := range order {
		idx := strings.Index(output, marker)
		if idx <= last {
			t.Fatalf("question %s rendered out of order", marker)
		}
		last = idx
	}
	if strings.Contains(output, "<!DOCTYPE html>") {
		t.Fatalf("fragment mode should not emit a document")
	}
}

func TestRenderer_ValuesErrorsAndHidden(t *testing.T) {
	output := renderSample(t, render.RenderOptions{
		Action: "/submit",
		Values: map[string]any{
			"q1": "Ada",
			"q3": "Option 2",
			"q4": "Option 1",
			"q5": 42.0,
		},
		Errors:     map[string][]string{"q1": {"Name is required"}},
		FormErrors: []string{"Form is closed"},
		Hidden:     render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
	})

	assertContains(t, output,
		`action="/submit"`,
		`<div class="fb-field" data-component="text" data-question-type="text" data-invalid="true">`,
		`<input id="fb-q1" name="q1" type="text" class="fb-input" value="Ada" required aria-required="true" aria-invalid="true" aria-describedby="fb-q1-errors">`,
		`<ul id="fb-q1-errors" class="fb-field-errors"><li>Name is required</li></ul>`,
		`<input type="radio" id="fb-q3-1" name="q3" value="Option 2" checked> Option 2</label>`,
		`<option value="Option 1" selected>Option 1</option>`,
		`value="42"`,
		`<li>Form is closed</li>`,
		`<input type="hidden" name="_csrf" value="tok">`,
	)
}

func TestRenderer_ThemeAndStyles(t *testing.T) {
	output := renderSample(t, render.RenderOptions{Theme: testThemeConfig()},
		vanilla.WithStylesheet("/assets/custom.css"),
		vanilla.WithDefaultStyles(),
	)

	assertContains(t, output,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`<link rel="stylesheet" href="/themes/acme/vanilla.stylesheet">`,
		`.fb-form {`,
		`<style data-theme="acme" data-variant="dark">:root {`,
		`--brand: #123456;`,
	)
	if strings.Contains(output, "evil") {
		t.Fatalf("css var without -- prefix should be skipped")
	}
}

func TestRenderer_FullPageAndTranslations(t *testing.T) {
	output := renderSample(t, render.RenderOptions{
		Locale: "es",
		Translator: render.MapTranslator{"es": {
			render.MsgSubmit: "Enviar",
			render.MsgChoose: "Elige una opción",
		}},
	}, vanilla.WithFullPage("es"))

	if !strings.HasPrefix(output, "<!DOCTYPE html>") {
		t.Fatalf("expected full document, got %q", output[:40])
	}
	assertContains(t, output,
		`<html lang="es">`,
		`<title>Customer Feedback</title>`,
		`<button type="submit">Enviar</button>`,
		`<option value="">Elige una opción</option>`,
	)
}

func TestRenderer_EmptyFormAndEscaping(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithChromeClasses(map[vanilla.ChromeClass]string{
		vanilla.ClassForm: "card fb-hijack",
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), model.FormModel{ID: "empty", Title: `Tom & "Jerry"`}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`class="fb-form card"`,
		`<h1>Tom &amp; &quot;Jerry&quot;</h1>`,
		`<p class="fb-empty">This form has no questions yet.</p>`,
		`enctype="application/x-www-form-urlencoded"`,
	)

	out, err = renderer.Render(context.Background(), model.FormModel{
		ID: "x",
		Fields: []model.Field{{
			Name:  "q1",
			Type:  model.FieldTypeString,
			Label: "<b>bold</b>",
			Enum:  []string{"<i>it</i>"},
		}},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`&lt;b&gt;bold&lt;/b&gt;`,
		`<option value="&lt;i&gt;it&lt;/i&gt;">&lt;i&gt;it&lt;/i&gt;</option>`,
	)
}

func TestRenderer_UnknownWidget(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := model.FormModel{ID: "x", Fields: []model.Field{{
		Name:    "q1",
		Type:    model.FieldTypeNumber,
		UIHints: map[string]string{"widget": "slider"},
	}}}
	_, err = renderer.Render(context.Background(), form, render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), `component "slider" not registered for field "q1"`) {
		t.Fatalf("expected unknown component error, got %v", err)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, model.FormModel{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			if name == "templates/form.tmpl" {
				return "custom-output", nil
			}
			return "<component />", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), testsupport.SampleForm(t, "f"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if stub.calls != 7 {
		t.Fatalf("expected six component renders plus the form, got %d", stub.calls)
	}
}

func TestAssetsFSIncludesStylesheet(t *testing.T) {
	if _, err := vanilla.AssetsFS().Open(vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet in assets: %v", err)
	}
}

func testThemeConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		CSSVars: map[string]string{
			"--brand": "#123456",
			"evil":    "red",
		},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}
}

type stubTemplateRenderer struct {
	calls              int
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}

func TestRenderer_TemplatesDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := `<main data-form="{{ form.id }}">{{ fields|safe }}</main>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "form.tmpl"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	output := renderSample(t, render.RenderOptions{}, vanilla.WithTemplatesDir(dir))

	if !strings.HasPrefix(output, `<main data-form="feedback">`) {
		t.Fatalf("expected custom form template, got:\n%s", output)
	}
	// component templates still come from the bundle
	assertContains(t, output, `<select id="fb-q4" name="q4" class="fb-select">`)

	if _, err := vanilla.New(vanilla.WithTemplatesDir(filepath.Join(dir, "missing"))); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}
