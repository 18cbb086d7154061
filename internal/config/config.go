// Package config loads the reportgen runtime configuration.
//
// Values are resolved in order: built-in defaults, an optional TOML file, a
// .env file and finally REPORTGEN_* variables from the process environment.
// The process environment wins over .env, which is never written back to it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const envPrefix = "REPORTGEN_"

var (
	ErrUnknownKeys   = errors.New("config: unknown keys")
	ErrInvalidValue  = errors.New("config: invalid value")
	ErrCatalogSource = errors.New("config: catalog file and url are mutually exclusive")
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Catalog CatalogConfig `toml:"catalog"`
	Session SessionConfig `toml:"session"`
}

type AppConfig struct {
	Environment string `toml:"environment"`
	Addr        string `toml:"addr"`
	LogFile     string `toml:"log_file"`
	BasePath    string `toml:"base_path"`
	PageTitle   string `toml:"page_title"`

	// TemplatesDir overrides the embedded HTML templates file by file.
	TemplatesDir string `toml:"templates_dir"`
}

// CatalogConfig selects where field set definitions come from. File and URL
// feed the in-memory catalog; a non-empty DSN switches to the database store.
type CatalogConfig struct {
	File           string        `toml:"file"`
	URL            string        `toml:"url"`
	Driver         string        `toml:"driver"`
	DSN            string        `toml:"dsn"`
	CacheTTL       time.Duration `toml:"cache_ttl"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type SessionConfig struct {
	IdleTTL time.Duration `toml:"idle_ttl"`
}

// Production reports whether the app runs in production mode.
func (c Config) Production() bool {
	return c.App.Environment == "production"
}

// UsesStore reports whether the catalog is backed by the database.
func (c Config) UsesStore() bool {
	return c.Catalog.DSN != ""
}

func Default() Config {
	return Config{
		App: AppConfig{
			Environment: "development",
			Addr:        ":8080",
			LogFile:     "reportgen.log",
			BasePath:    "/api",
		},
		Catalog: CatalogConfig{
			File:           "catalog.yaml",
			Driver:         "sqlite",
			CacheTTL:       5 * time.Minute,
			RequestTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			IdleTTL: 2 * time.Hour,
		},
	}
}

type loadOptions struct {
	envFile string
	lookup  func(string) (string, bool)
}

type Option func(*loadOptions)

// WithEnvFile reads name instead of ".env". An empty name disables the file.
func WithEnvFile(name string) Option {
	return func(o *loadOptions) {
		o.envFile = name
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookup = fn
		}
	}
}

// Load resolves the configuration. path may be empty to skip the TOML file.
func Load(path string, opts ...Option) (Config, error) {
	options := loadOptions{envFile: ".env", lookup: os.LookupEnv}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
		}
		if cfg.Catalog.URL != "" && !meta.IsDefined("catalog", "file") {
			cfg.Catalog.File = ""
		}
	}

	dotenv, err := readEnvFile(options.envFile)
	if err != nil {
		return Config{}, err
	}
	env := environment{lookup: options.lookup, fallback: dotenv}
	if err := env.apply(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	switch c.App.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("%w: app.environment %q", ErrInvalidValue, c.App.Environment)
	}
	switch c.Catalog.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: catalog.driver %q", ErrInvalidValue, c.Catalog.Driver)
	}
	if c.Catalog.File != "" && c.Catalog.URL != "" {
		return ErrCatalogSource
	}
	if c.Catalog.CacheTTL < 0 || c.Session.IdleTTL < 0 || c.Catalog.RequestTimeout < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidValue)
	}
	return nil
}

func readEnvFile(name string) (map[string]string, error) {
	if name == "" {
		return nil, nil
	}
	values, err := godotenv.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return values, nil
}
