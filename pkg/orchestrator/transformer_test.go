package orchestrator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestPresetTransformer_YAML(t *testing.T) {
	transformer, err := NewPresetTransformer([]byte(`
description: Tell us how we did
metadata:
  campaign: spring
fields:
  q1:
    placeholder: Jane Doe
    uiHints:
      autocomplete: name
  q5:
    description: From 1 to 10
`))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}

	form := testsupport.SampleForm(t, "feedback")
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if form.Description != "Tell us how we did" || form.Metadata["campaign"] != "spring" {
		t.Fatalf("form-level patch missing: %+v", form)
	}
	name, _ := form.Field("q1")
	if name.Placeholder != "Jane Doe" {
		t.Fatalf("placeholder not applied: %q", name.Placeholder)
	}
	if diff := cmp.Diff(map[string]string{"inputType": "text", "autocomplete": "name"}, name.UIHints); diff != "" {
		t.Fatalf("ui hints mismatch (-want +got):\n%s", diff)
	}
	rating, _ := form.Field("q5")
	if rating.Description != "From 1 to 10" {
		t.Fatalf("description not applied: %q", rating.Description)
	}
}

func TestPresetTransformer_JSONFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"presets/feedback.json": &fstest.MapFile{Data: []byte(`{"title": "Feedback", "fields": {"q2": {"label": "Comments"}}}`)},
	}
	transformer, err := NewPresetTransformerFromFS(fsys, "presets/feedback.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	form := testsupport.SampleForm(t, "feedback")
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if form.Title != "Feedback" {
		t.Fatalf("title not patched: %q", form.Title)
	}
	comments, _ := form.Field("q2")
	if comments.Label != "Comments" {
		t.Fatalf("label not patched: %q", comments.Label)
	}
}

func TestPresetTransformer_UnknownQuestion(t *testing.T) {
	transformer, err := NewPresetTransformer([]byte("fields:\n  q99:\n    label: Ghost\n"))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}
	form := testsupport.SampleForm(t, "feedback")
	err = transformer.Transform(context.Background(), &form)
	if err == nil || !strings.Contains(err.Error(), "q99") {
		t.Fatalf("expected unknown question error, got %v", err)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	if _, err := NewPresetTransformer([]byte("   ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := NewPresetTransformer([]byte("fields: [")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewPresetTransformerFromFS(nil, "x"); err == nil {
		t.Fatalf("expected error for nil fs")
	}
	if _, err := NewPresetTransformerFromFS(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}

	transformer, _ := NewPresetTransformer([]byte("title: x"))
	if err := transformer.Transform(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil form")
	}
}

func TestTransformerFunc_Nil(t *testing.T) {
	var fn TransformerFunc
	if err := fn.Transform(context.Background(), nil); err != nil {
		t.Fatalf("nil func should be a no-op: %v", err)
	}
}
