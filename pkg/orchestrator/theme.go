package orchestrator

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla/components"
)

func defaultThemeFallbacks() map[string]string {
	return components.DefaultPartials()
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return RendererConfig(selection, o.themeFallbacks), nil
}

// RendererConfig flattens a theme selection into the configuration renderers
// consume. Variant templates, tokens and asset files override the base
// manifest; fallbacks fill partial keys neither of them sets.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: copyStringMap(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}
	if selection == nil {
		return cfg
	}
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}

	prefix := manifest.Assets.Prefix
	files := copyStringMap(manifest.Assets.Files)
	mergeInto(cfg.Partials, manifest.Templates)
	mergeInto(cfg.Tokens, manifest.Tokens)

	if v, ok := manifest.Variants[cfg.Variant]; ok {
		mergeInto(cfg.Partials, v.Templates)
		mergeInto(cfg.Tokens, v.Tokens)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		if files == nil {
			files = map[string]string{}
		}
		mergeInto(files, v.Assets.Files)
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimSuffix(prefix, "/") + "/" + file
		}
		return path.Join(prefix, file)
	}
}

// ManifestSelector is an in-memory theme.ThemeSelector over a fixed set of
// manifests, used when themes ship with the binary or a config file.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests by name. The first manifest becomes
// the default theme unless defaultTheme is set.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Duplicate names return an error.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("theme selector: manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return fmt.Errorf("theme selector: manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("theme selector: theme %q already registered", name)
	}
	s.manifests[name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = name
	}
	return nil
}

// Themes lists registered theme names in sorted order.
func (s *ManifestSelector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant, falling back to the defaults when empty.
// Unknown themes and variants are errors.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme selector: theme %q not found", name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme selector: variant %q not found in theme %q", variant, name)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
