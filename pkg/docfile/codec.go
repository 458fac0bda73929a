package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/document"
)

// Format is an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is a form document plus the id it is published under.
type File struct {
	FormID   string
	Document *document.Document
}

type wireFile struct {
	ID        string              `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string              `json:"title" yaml:"title"`
	Questions []document.Question `json:"questions" yaml:"questions"`
}

// FormatFromPath picks the encoding from the file extension. Unknown
// extensions are YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses data as a form file and validates the document. An empty
// format sniffs JSON from a leading brace and falls back to YAML.
func Decode(data []byte, format Format) (File, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return File{}, errors.New("docfile: document is empty")
	}
	if format == "" {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var wire wireFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wire); err != nil {
			return File{}, fmt.Errorf("docfile: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&wire); err != nil {
			return File{}, fmt.Errorf("docfile: decode yaml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("docfile: unsupported format %q", format)
	}

	doc := &document.Document{Title: wire.Title, Questions: wire.Questions}
	for idx := range doc.Questions {
		if doc.Questions[idx].Options == nil {
			doc.Questions[idx].Options = []string{}
		}
	}
	if err := doc.Validate(); err != nil {
		return File{}, fmt.Errorf("docfile: %w", err)
	}
	return File{FormID: strings.TrimSpace(wire.ID), Document: doc}, nil
}

// Encode serialises f in the requested format.
func Encode(f File, format Format) ([]byte, error) {
	if f.Document == nil {
		return nil, errors.New("docfile: document is required")
	}
	wire := wireFile{
		ID:        f.FormID,
		Title:     f.Document.Title,
		Questions: f.Document.Questions,
	}
	if wire.Questions == nil {
		wire.Questions = []document.Question{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("docfile: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(wire); err != nil {
			return nil, fmt.Errorf("docfile: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("docfile: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("docfile: unsupported format %q", format)
	}
}
