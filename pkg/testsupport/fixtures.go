package testsupport

import (
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
)

//go:embed testdata/catalog.yaml
var catalogFixture []byte

// CatalogPayload returns the raw fixture catalog. It holds three valid
// entries (plaie, fracture, brulure) and one entry that Parse quarantines.
func CatalogPayload() []byte {
	return append([]byte(nil), catalogFixture...)
}

// Definitions parses the fixture catalog and fails the test on error.
func Definitions(t testing.TB) []model.FieldSetDefinition {
	t.Helper()

	result, err := catalog.Parse(catalogFixture)
	if err != nil {
		t.Fatalf("parse fixture catalog: %v", err)
	}
	return result.Definitions
}

// Definition returns a single fixture definition by id.
func Definition(t testing.TB, id string) model.FieldSetDefinition {
	t.Helper()

	for _, def := range Definitions(t) {
		if def.ID == id {
			return def
		}
	}
	t.Fatalf("fixture definition %q not found", id)
	return model.FieldSetDefinition{}
}

// Reader returns an in-memory reader seeded with the fixture definitions.
func Reader(t testing.TB) *catalog.Memory {
	t.Helper()
	return catalog.NewMemory(Definitions(t)...)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
