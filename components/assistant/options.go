package assistant

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// Options configures the component.
type Options struct {
	// BasePath prefixes every route.
	BasePath string
	// PageTitle is used by the HTML session page.
	PageTitle string
	// Rejections are catalog entries dropped at load time, reported by
	// GET /catalog.
	Rejections []catalog.Rejection
	// TemplatesDir holds templates that take precedence over the embedded
	// ones. Ignored when Engine is set.
	TemplatesDir string
	Logger       *zap.Logger
	Engine       *render.Engine
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath:  "/api",
		PageTitle: render.DefaultTitle,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.PageTitle == "" {
		opts.PageTitle = render.DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rejections != nil {
		opts.Rejections = append([]catalog.Rejection{}, opts.Rejections...)
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		o.BasePath = path
	}
}

func WithPageTitle(title string) OptionFn {
	return func(o *Options) {
		o.PageTitle = title
	}
}

func WithRejections(rejections []catalog.Rejection) OptionFn {
	return func(o *Options) {
		o.Rejections = rejections
	}
}

func WithLogger(l *zap.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = l
	}
}

func WithTemplatesDir(dir string) OptionFn {
	return func(o *Options) {
		o.TemplatesDir = dir
	}
}

// WithEngine replaces the default HTML engine.
func WithEngine(engine *render.Engine) OptionFn {
	return func(o *Options) {
		o.Engine = engine
	}
}
