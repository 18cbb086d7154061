package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/session"
)

// Component bundles the catalog, the session manager and the HTML engine
// behind gin routes.
type Component struct {
	opts     Options
	reader   catalog.Reader
	sessions *session.Manager
	engine   *render.Engine
	contract *openapi3.T
}

// New validates the embedded contract and builds the component.
func New(ctx context.Context, reader catalog.Reader, sessions *session.Manager, fns ...OptionFn) (*Component, error) {
	if reader == nil {
		return nil, errors.New("assistant: catalog reader is required")
	}
	if sessions == nil {
		return nil, errors.New("assistant: session manager is required")
	}
	opts := NewOptions(fns...)

	contract, err := LoadContract(ctx)
	if err != nil {
		return nil, err
	}

	// Pages read api_base to address the JSON routes.
	globals := map[string]any{"api_base": basePath(opts.BasePath)}
	engine := opts.Engine
	if engine == nil {
		engine, err = render.New(render.WithBaseDir(opts.TemplatesDir), render.WithGlobalData(globals))
	} else {
		err = engine.GlobalContext(globals)
	}
	if err != nil {
		return nil, fmt.Errorf("assistant: build html engine: %w", err)
	}

	return &Component{
		opts:     opts,
		reader:   reader,
		sessions: sessions,
		engine:   engine,
		contract: contract,
	}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Contract returns the validated OpenAPI document served at /openapi.yaml.
func (c *Component) Contract() *openapi3.T {
	return c.contract
}

// Handler returns a standalone gin engine serving the component.
func (c *Component) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(c.opts.Logger))
	c.RegisterRoutes(router)
	return router
}
