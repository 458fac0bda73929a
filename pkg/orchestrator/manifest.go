package orchestrator

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestAssets struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type manifestVariant struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    manifestAssets    `yaml:"assets"`
}

type manifestFile struct {
	Name      string                     `yaml:"name"`
	Version   string                     `yaml:"version"`
	Tokens    map[string]string          `yaml:"tokens"`
	Templates map[string]string          `yaml:"templates"`
	Assets    manifestAssets             `yaml:"assets"`
	Variants  map[string]manifestVariant `yaml:"variants"`
}

// ParseManifest decodes a theme manifest from YAML or JSON:
//
//	name: acme
//	tokens: {brand: "#123456"}
//	assets: {prefix: /assets/acme, files: {vanilla.stylesheet: theme.css}}
//	variants:
//	  dark: {tokens: {brand: "#654321"}}
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("theme manifest: decode: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("theme manifest: name is required")
	}

	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(raw.Name),
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets:    theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, v := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadManifests reads and parses each manifest file.
func LoadManifests(paths ...string) ([]*theme.Manifest, error) {
	out := make([]*theme.Manifest, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("theme manifest: read %s: %w", path, err)
		}
		manifest, err := ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, manifest)
	}
	return out, nil
}
