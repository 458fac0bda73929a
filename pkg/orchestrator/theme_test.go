package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"radius": "4px",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.radio": "themes/acme/dark/radio.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}}
	renderer := &captureRenderer{}
	orch := New(WithRegistry(captureRegistry(t, renderer)), WithThemeSelector(selector))

	_, err := orch.Generate(context.Background(), Request{
		Document:     document.NewDefault(),
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection mismatch: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("base template override missing: %s", cfg.Partials["forms.input"])
	}
	if cfg.Partials["forms.radio"] != "themes/acme/dark/radio.tmpl" {
		t.Fatalf("variant template override missing: %s", cfg.Partials["forms.radio"])
	}
	if cfg.Partials["forms.textarea"] != defaultThemeFallbacks()["forms.textarea"] {
		t.Fatalf("fallback partial not applied for textarea")
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.Tokens["radius"] != "4px" {
		t.Fatalf("tokens not merged: %#v", cfg.Tokens)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens: %#v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %s", got)
	}
}

func TestOrchestrator_ExplicitThemeWinsOverSelector(t *testing.T) {
	selector := &stubThemeSelector{}
	renderer := &captureRenderer{}
	orch := New(WithRegistry(captureRegistry(t, renderer)), WithThemeSelector(selector))

	explicit := &theme.RendererConfig{Theme: "inline"}
	req := Request{Document: document.NewDefault()}
	req.RenderOptions.Theme = explicit
	if _, err := orch.Generate(context.Background(), req); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("selector should not run when a theme is supplied")
	}
	if renderer.options.Theme != explicit {
		t.Fatalf("explicit theme replaced")
	}
}

func TestOrchestrator_SelectorErrorsAreWrapped(t *testing.T) {
	boom := errors.New("no themes")
	orch := New(
		WithRegistry(captureRegistry(t, &captureRenderer{})),
		WithThemeSelector(&stubThemeSelector{err: boom}),
	)
	_, err := orch.Generate(context.Background(), Request{Document: document.NewDefault()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestOrchestrator_ThemedVanillaOutput(t *testing.T) {
	manifest := acmeManifest()
	manifest.Templates = nil
	selector, err := NewManifestSelector("acme", "", manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	orch := New(WithThemeSelector(selector))

	output, err := orch.Generate(context.Background(), Request{Document: testsupport.SampleDocument()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	for _, want := range []string{"--brand: #123456;", `href="/assets/themes/acme/theme.css"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("themed output missing %s:\n%s", want, html)
		}
	}
}

func TestManifestSelector_Select(t *testing.T) {
	selector, err := NewManifestSelector("", "dark", acmeManifest(), &theme.Manifest{Name: "plain"})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	got, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if got.Theme != "acme" || got.Variant != "dark" || got.Manifest == nil {
		t.Fatalf("unexpected default selection: %+v", got)
	}

	got, err = selector.Select("plain", "")
	if err != nil {
		t.Fatalf("select plain: %v", err)
	}
	if got.Variant != "" {
		t.Fatalf("default variant leaked onto another theme: %q", got.Variant)
	}

	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if _, err := selector.Select("acme", "neon"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if names := selector.Themes(); strings.Join(names, ",") != "acme,plain" {
		t.Fatalf("unexpected themes: %v", names)
	}
}

func TestManifestSelector_RegisterValidation(t *testing.T) {
	selector, _ := NewManifestSelector("", "")
	if err := selector.Register(nil); err == nil {
		t.Fatalf("expected error for nil manifest")
	}
	if err := selector.Register(&theme.Manifest{}); err == nil {
		t.Fatalf("expected error for unnamed manifest")
	}
	if err := selector.Register(acmeManifest()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := selector.Register(acmeManifest()); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestRendererConfig_AbsoluteAssetsAndNilSelection(t *testing.T) {
	cfg := RendererConfig(nil, map[string]string{"forms.input": "x.tmpl"})
	if cfg.Partials["forms.input"] != "x.tmpl" || cfg.AssetURL != nil {
		t.Fatalf("unexpected config for nil selection: %+v", cfg)
	}

	manifest := &theme.Manifest{
		Name: "cdn",
		Assets: theme.Assets{
			Prefix: "https://cdn.example.com/themes/",
			Files: map[string]string{
				"vanilla.stylesheet": "cdn.css",
				"logo":               "https://img.example.com/logo.svg",
			},
		},
	}
	cfg = RendererConfig(&theme.Selection{Manifest: manifest}, nil)
	if cfg.Theme != "cdn" {
		t.Fatalf("theme name should fall back to manifest name, got %q", cfg.Theme)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "https://cdn.example.com/themes/cdn.css" {
		t.Fatalf("unexpected prefixed url: %s", got)
	}
	if got := cfg.AssetURL("logo"); got != "https://img.example.com/logo.svg" {
		t.Fatalf("absolute url rewritten: %s", got)
	}
}
