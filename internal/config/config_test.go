package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/internal/config"
)

func lookupFrom(values map[string]string) config.Option {
	return config.WithLookup(func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", config.WithEnvFile(""), lookupFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.UsesStore() || cfg.Production() {
		t.Fatalf("expected in-memory development defaults")
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "reportgen.toml", `
[app]
addr = ":9000"
environment = "production"

[catalog]
url = "https://example.test/catalog.json"
cache_ttl = "30s"

[session]
idle_ttl = "45m"
`)
	envFile := writeFile(t, dir, ".env", "REPORTGEN_ADDR=:7000\nREPORTGEN_CATALOG_DSN=file:catalog.db\n")

	cfg, err := config.Load(path, config.WithEnvFile(envFile), lookupFrom(map[string]string{
		"REPORTGEN_ADDR":             ":6000",
		"REPORTGEN_SESSION_IDLE_TTL": "1h",
		"REPORTGEN_TEMPLATES_DIR":    "/srv/templates",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Default()
	want.App.Addr = ":6000"
	want.App.Environment = "production"
	want.Catalog.File = ""
	want.Catalog.URL = "https://example.test/catalog.json"
	want.Catalog.CacheTTL = 30 * time.Second
	want.Catalog.DSN = "file:catalog.db"
	want.Session.IdleTTL = time.Hour
	want.App.TemplatesDir = "/srv/templates"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.UsesStore() || !cfg.Production() {
		t.Fatalf("expected production store config")
	}
}

func TestEnvironmentURLReplacesFile(t *testing.T) {
	cfg, err := config.Load("", config.WithEnvFile(""), lookupFrom(map[string]string{
		"REPORTGEN_CATALOG_URL": "http://localhost/catalog.yaml",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Catalog.File != "" || cfg.Catalog.URL != "http://localhost/catalog.yaml" {
		t.Fatalf("unexpected catalog source %+v", cfg.Catalog)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		toml string
		env  map[string]string
		want error
	}{
		{name: "unknown key", toml: "[app]\nport = 1\n", want: config.ErrUnknownKeys},
		{name: "bad driver", toml: "[catalog]\ndriver = \"mysql\"\n", want: config.ErrInvalidValue},
		{name: "bad environment", env: map[string]string{"REPORTGEN_ENV": "staging"}, want: config.ErrInvalidValue},
		{name: "bad duration", env: map[string]string{"REPORTGEN_CATALOG_CACHE_TTL": "soon"}, want: config.ErrInvalidValue},
		{name: "two sources", toml: "[catalog]\nfile = \"a.yaml\"\nurl = \"http://b\"\n", want: config.ErrCatalogSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.toml != "" {
				path = writeFile(t, dir, "config.toml", tt.toml)
			}
			_, err := config.Load(path, config.WithEnvFile(""), lookupFrom(tt.env))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")
	if _, err := config.Load("", config.WithEnvFile(missing), lookupFrom(nil)); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}
