package render_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/session"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func TestSessionPage(t *testing.T) {
	reader := testsupport.Reader(t)
	reader.Put(model.FieldSetDefinition{
		ID:    "piege",
		Title: `<script>alert(1)</script>Piège`,
		Fields: []model.FieldDefinition{
			{Category: "Note", Kind: model.FieldKindNumeric, Template: "{note}"},
		},
	})
	s := session.New(reader, session.WithID("s-1"), session.WithKeyGenerator(sequence("k1", "k2")))

	if _, err := s.Answer(session.TargetLead, "hopital", model.Text("Paleto Medical Center")); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := s.AddInstance(context.Background(), "plaie"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Toggle("k1", "soins", "suture"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := s.AddInstance(context.Background(), "piege"); err != nil {
		t.Fatalf("add: %v", err)
	}

	engine, err := render.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	html, err := engine.Session(s.View(), "", &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != buf.String() {
		t.Fatalf("returned and written output differ")
	}

	for _, want := range []string{
		`<title>Assistant de rendu</title>`,
		`data-session="s-1"`,
		`data-target="lead"`,
		`data-target="k1"`,
		`data-target="trail"`,
		`value="Paleto Medical Center" checked>`,
		`value="suture" checked>`,
		`Soins : suture. </textarea>`,
		`<textarea name="report" rows="12">Arrivé sur les lieux (appel dispatch)`,
		`<h3>Piège</h3>`,
		`Depart intervention`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("catalog markup leaked into the page")
	}
}

func TestEmptySessionPage(t *testing.T) {
	engine, err := render.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	html, err := engine.Session(session.New(catalog.NewMemory()).View(), "Rendu")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Aucune blessure ajoutée.") || !strings.Contains(html, "<title>Rendu</title>") {
		t.Fatalf("unexpected empty page:\n%s", html)
	}
}

func TestCustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"session.html": &fstest.MapFile{Data: []byte(`{{ title }}|{{ report.text }}|{{ lead.title|sanitize }}|{{ api_base }}`)},
	}
	engine, err := render.New(render.WithFS(files), render.WithGlobalData(map[string]any{"api_base": "/api"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	html, err := engine.Session(session.New(catalog.NewMemory()).View(), "T")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "T||Hopital|/api" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestBaseDirTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.html"), []byte(`local {{ title }}`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := render.New(render.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	html, err := engine.Session(session.New(catalog.NewMemory()).View(), "Rendu")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "local Rendu" {
		t.Fatalf("unexpected output %q", html)
	}

	out, err := engine.RenderTemplate("section", map[string]any{"section": map[string]any{"title": "Sortie"}})
	if err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
	if !strings.Contains(out, "Sortie") {
		t.Fatalf("expected embedded section template, got %q", out)
	}
}

func TestRenderString(t *testing.T) {
	engine, err := render.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderString(`{{ name|sanitize }}`, map[string]any{"name": "<i>Zone</i>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "Zone" {
		t.Fatalf("unexpected output %q", out)
	}
}

func sequence(keys ...string) func() string {
	i := 0
	return func() string {
		key := keys[i%len(keys)]
		i++
		return key
	}
}
