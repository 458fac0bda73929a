package docfile

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a form file lives so loaders can read files, fs.FS
// entries, or URLs through one call.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses raw and returns a Source. It panics on invalid URLs to
// surface configuration mistakes early; use ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlFromString(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseSource treats http(s) locations as URLs and anything else as a file
// path.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("docfile: empty source")
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return urlFromString(location)
	}
	return SourceFromFile(location), nil
}

func urlFromString(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("docfile: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("docfile: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}
