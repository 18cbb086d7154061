package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"time"
)

// SourceKind enumerates where a catalog payload can come from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies the origin of a catalog payload.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile points at a payload on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at a payload inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL parses raw and returns an HTTP source.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("catalog: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("catalog: invalid URL %q: %w", raw, err)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// Payload is a raw catalog document with its origin.
type Payload struct {
	source Source
	raw    []byte
}

// NewPayload wraps raw bytes loaded from src.
func NewPayload(src Source, raw []byte) (Payload, error) {
	if src == nil {
		return Payload{}, errors.New("catalog: source is required")
	}
	if len(raw) == 0 {
		return Payload{}, ErrEmptyPayload
	}
	return Payload{source: src, raw: append([]byte(nil), raw...)}, nil
}

func (p Payload) Source() Source { return p.source }

// Raw returns a copy of the payload bytes.
func (p Payload) Raw() []byte {
	return append([]byte(nil), p.raw...)
}

// Parse runs the payload through Parse.
func (p Payload) Parse() (ParseResult, error) {
	return Parse(p.raw)
}

// Loader fetches catalog payloads. Implementations live in
// internal/catalog/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Payload, error)
}

// LoaderOptions configures how a Loader resolves sources. HTTP sources are
// disabled unless a client is given or AllowHTTP is set.
type LoaderOptions struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables remote payloads using a default client capped by timeout.
func WithHTTP(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies options in order.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
