package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
name: acme
version: 1.0.0
tokens:
  brand: "#123456"
  radius: 4px
templates:
  forms.input: themes/acme/input.tmpl
assets:
  prefix: /assets/themes/acme
  files:
    vanilla.stylesheet: theme.css
variants:
  dark:
    tokens:
      brand: "#654321"
    templates:
      forms.radio: themes/acme/dark/radio.tmpl
    assets:
      files:
        vanilla.stylesheet: theme.dark.css
`)
	got, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := acmeManifest()
	if got.Name != want.Name || got.Version != want.Version {
		t.Fatalf("unexpected identity %q %q", got.Name, got.Version)
	}
	if diff := cmp.Diff(want.Tokens, got.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Templates, got.Templates); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if got.Assets.Prefix != want.Assets.Prefix || got.Assets.Files["vanilla.stylesheet"] != "theme.css" {
		t.Fatalf("unexpected assets %+v", got.Assets)
	}
	dark, ok := got.Variants["dark"]
	if !ok {
		t.Fatalf("dark variant missing")
	}
	if diff := cmp.Diff(want.Variants["dark"].Tokens, dark.Tokens); diff != "" {
		t.Fatalf("variant tokens mismatch (-want +got):\n%s", diff)
	}
	if dark.Templates["forms.radio"] != "themes/acme/dark/radio.tmpl" || dark.Assets.Files["vanilla.stylesheet"] != "theme.dark.css" {
		t.Fatalf("unexpected variant %+v", dark)
	}
}

func TestParseManifest_Errors(t *testing.T) {
	if _, err := ParseManifest([]byte("version: 1\n")); err == nil {
		t.Fatalf("expected missing name to fail")
	}
	if _, err := ParseManifest([]byte("name: x\npalette: {}\n")); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestLoadManifests(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "night.json")
	if err := os.WriteFile(path, []byte(`{"name":"night","tokens":{"bg":"#000"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	manifests, err := LoadManifests(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	selector, err := NewManifestSelector("", "", manifests...)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "")
	if err != nil || selection.Theme != "night" {
		t.Fatalf("unexpected selection %+v (%v)", selection, err)
	}

	if _, err := LoadManifests(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
