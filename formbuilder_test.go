package formbuilder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}

func TestEmbeddedTemplatesContainForm(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	doc := NewDocument(document.WithTitle("Feedback"))
	if _, err := doc.AddQuestion(document.QuestionTypeDropdown); err != nil {
		t.Fatalf("add: %v", err)
	}

	html, err := GenerateHTML(context.Background(), doc, "feedback", "", RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"Feedback", `data-form-id="feedback"`, "Option 1"} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	body := `{"title":"Signup","questions":[{"id":"email","type":"text","label":"Email","required":true,"options":[]}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := LoadDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title != "Signup" || len(doc.Questions) != 1 || doc.Questions[0].ID != "email" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if NewLoader() == nil {
		t.Fatalf("expected a loader")
	}
}
