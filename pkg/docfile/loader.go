package docfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/document"
)

// maxRemoteBytes caps documents fetched over HTTP.
const maxRemoteBytes = 4 << 20

// LoaderOptions configures how a Loader resolves sources. Loading is
// offline-first: HTTP stays disabled unless a client or fallback is set.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient enables URL sources with caller-controlled behaviour.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// IDs is assigned to every loaded document; nil keeps the UUID default.
	IDs document.IDGenerator
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS lookups.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and an optional
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithIDGenerator sets the id source for questions added to loaded
// documents.
func WithIDGenerator(gen document.IDGenerator) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.IDs = gen
	}
}

// Loader reads form files from disk, an fs.FS, or HTTP.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	ids       document.IDGenerator
}

// NewLoader constructs a Loader from options.
func NewLoader(options ...LoaderOption) *Loader {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	timeout := cfg.RequestTimeout

	var httpClient *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case cfg.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        cfg.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		ids:       cfg.IDs,
	}
}

// LoadPath is a shorthand for loading a file path or http(s) URL with a
// default loader that allows HTTP. Extra options apply after the default.
func LoadPath(ctx context.Context, location string, options ...LoaderOption) (File, error) {
	src, err := ParseSource(location)
	if err != nil {
		return File{}, err
	}
	return NewLoader(append([]LoaderOption{WithHTTPFallback(0)}, options...)...).Load(ctx, src)
}

// Load fetches and decodes the form file at src. The format follows the
// location's extension, sniffing content when there is none.
func (l *Loader) Load(ctx context.Context, src Source) (File, error) {
	if src == nil {
		return File{}, errors.New("docfile loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if !l.allowHTTP {
			return File{}, errors.New("docfile loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location())
	default:
		err = fmt.Errorf("docfile loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return File{}, err
	}

	file, err := Decode(data, formatForLocation(src.Location()))
	if err != nil {
		return File{}, fmt.Errorf("%w (%s)", err, src.Location())
	}
	if l.ids != nil {
		file.Document.SetIDGenerator(l.ids)
	}
	return file, nil
}

func formatForLocation(location string) Format {
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		location = location[:idx]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

func loadFile(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("docfile loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("docfile loader: %w", err)
	}
	return data, nil
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("docfile loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("docfile loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, fmt.Errorf("docfile loader: %w", err)
	}
	return data, nil
}

func loadHTTP(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("docfile loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docfile loader: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("docfile loader: fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes+1))
	if err != nil {
		return nil, fmt.Errorf("docfile loader: read %s: %w", rawURL, err)
	}
	if len(data) > maxRemoteBytes {
		return nil, fmt.Errorf("docfile loader: %s exceeds %d bytes", rawURL, maxRemoteBytes)
	}
	return data, nil
}
