// Package reportgen assembles a plain-text incident report from a catalog of
// field sets. The root package wires the catalog loader and exposes the
// common entry points; the building blocks live under pkg/.
package reportgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-reportgen/internal/catalog/loader"
	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// NewLoader constructs a catalog loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...catalog.LoaderOption) catalog.Loader {
	return loader.New(catalog.NewLoaderOptions(options...))
}

// ParseSource maps a CLI or config value to a catalog source. http(s) URLs
// become remote sources, anything else a file path.
func ParseSource(raw string) (catalog.Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, errors.New("reportgen: catalog source is empty")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return catalog.SourceFromURL(location)
	}
	return catalog.SourceFromFile(location), nil
}

// LoadCatalog fetches src and returns the accepted definitions as an
// in-memory catalog together with the quarantined entries.
func LoadCatalog(ctx context.Context, l catalog.Loader, src catalog.Source) (*catalog.Memory, []catalog.Rejection, error) {
	if l == nil {
		l = NewLoader()
	}
	payload, err := l.Load(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	result, err := payload.Parse()
	if err != nil {
		return nil, nil, fmt.Errorf("reportgen: parse %s: %w", src.Location(), err)
	}
	return catalog.NewMemory(result.Definitions...), result.Quarantined, nil
}

// EmbeddedTemplates exposes the built-in HTML templates.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
