package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/document"
	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

// SampleDocument returns a document exercising every question type with
// deterministic ids q1..q6.
func SampleDocument() *document.Document {
	doc := document.NewDefault(
		document.WithTitle("Customer Feedback"),
		document.WithIDGenerator(document.NewSequenceIDs("q")),
	)
	for _, qt := range []document.QuestionType{
		document.QuestionTypeTextarea,
		document.QuestionTypeMultipleChoice,
		document.QuestionTypeDropdown,
		document.QuestionTypeNumber,
		document.QuestionTypeFile,
	} {
		if _, err := doc.AddQuestion(qt); err != nil {
			panic(fmt.Sprintf("testsupport: add %s: %v", qt, err))
		}
	}
	return doc
}

// SampleForm builds the form model for SampleDocument under formID.
func SampleForm(t *testing.T, formID string) pkgmodel.FormModel {
	t.Helper()

	form, err := pkgmodel.NewBuilder().Build(formID, SampleDocument())
	if err != nil {
		t.Fatalf("build sample form: %v", err)
	}
	return form
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
