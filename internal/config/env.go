package config

import (
	"fmt"
	"time"
)

type environment struct {
	lookup   func(string) (string, bool)
	fallback map[string]string
}

func (e environment) get(key string) (string, bool) {
	key = envPrefix + key
	if value, ok := e.lookup(key); ok {
		return value, true
	}
	value, ok := e.fallback[key]
	return value, ok
}

func (e environment) apply(cfg *Config) error {
	e.setString("ENV", &cfg.App.Environment)
	e.setString("ADDR", &cfg.App.Addr)
	e.setString("LOG_FILE", &cfg.App.LogFile)
	e.setString("BASE_PATH", &cfg.App.BasePath)
	e.setString("PAGE_TITLE", &cfg.App.PageTitle)
	e.setString("TEMPLATES_DIR", &cfg.App.TemplatesDir)

	// A URL from the environment replaces a file from the defaults or TOML.
	if url, ok := e.get("CATALOG_URL"); ok && url != "" {
		cfg.Catalog.URL = url
		cfg.Catalog.File = ""
	}
	e.setString("CATALOG_FILE", &cfg.Catalog.File)
	e.setString("CATALOG_DRIVER", &cfg.Catalog.Driver)
	e.setString("CATALOG_DSN", &cfg.Catalog.DSN)

	if err := e.setDuration("CATALOG_CACHE_TTL", &cfg.Catalog.CacheTTL); err != nil {
		return err
	}
	if err := e.setDuration("CATALOG_REQUEST_TIMEOUT", &cfg.Catalog.RequestTimeout); err != nil {
		return err
	}
	return e.setDuration("SESSION_IDLE_TTL", &cfg.Session.IdleTTL)
}

func (e environment) setString(key string, dst *string) {
	if value, ok := e.get(key); ok {
		*dst = value
	}
}

func (e environment) setDuration(key string, dst *time.Duration) error {
	value, ok := e.get(key)
	if !ok || value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s%s: %v", ErrInvalidValue, envPrefix, key, err)
	}
	*dst = d
	return nil
}
