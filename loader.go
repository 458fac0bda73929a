package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/docfile"
)

// NewLoader constructs a document loader for files, fs.FS bundles and, with
// docfile.WithHTTPFallback, remote URLs.
func NewLoader(options ...docfile.LoaderOption) *docfile.Loader {
	return docfile.NewLoader(options...)
}

// LoadDocument reads a YAML or JSON form document from a path or http(s) URL.
func LoadDocument(ctx context.Context, location string) (*Document, error) {
	file, err := docfile.LoadPath(ctx, location)
	if err != nil {
		return nil, err
	}
	return file.Document, nil
}
