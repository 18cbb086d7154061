package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/registry"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

func sequentialKeys(keys ...string) registry.KeyGenerator {
	i := 0
	return func() string {
		key := keys[i%len(keys)]
		i++
		return key
	}
}

func keysOf(r *registry.Registry) []string {
	out := make([]string, 0, r.Len())
	for _, inst := range r.Instances() {
		out = append(out, inst.Key)
	}
	return out
}

func TestAddCreatesEmptyAutoInstance(t *testing.T) {
	r := registry.New(testsupport.Reader(t))

	key, err := r.Add(context.Background(), "plaie")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if key == "" {
		t.Fatalf("expected a key")
	}

	inst, err := r.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inst.DefinitionID != "plaie" || inst.Text() != "" || inst.Section.Mode() != section.ModeAuto {
		t.Fatalf("unexpected instance state: %+v text=%q mode=%s", inst, inst.Text(), inst.Section.Mode())
	}
}

func TestAddUnknownDefinitionLeavesRegistryUnchanged(t *testing.T) {
	r := registry.New(testsupport.Reader(t))
	if _, err := r.Add(context.Background(), "plaie"); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := r.Add(context.Background(), "inconnu")
	if !errors.Is(err, registry.ErrUnknownDefinition) {
		t.Fatalf("expected ErrUnknownDefinition, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected registry unchanged, got %d instances", r.Len())
	}
}

func TestAddRegeneratesCollidingKeys(t *testing.T) {
	r := registry.New(testsupport.Reader(t), registry.WithKeyGenerator(sequentialKeys("a", "a", "", "b")))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := r.Add(ctx, "plaie"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, keysOf(r)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestInstancesAreIsolated(t *testing.T) {
	r := registry.New(testsupport.Reader(t))
	ctx := context.Background()
	first, _ := r.Add(ctx, "plaie")
	second, _ := r.Add(ctx, "plaie")

	if _, err := r.Update(first, section.AnswerChanged{Key: "zone", Value: model.Text("bras")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	a, _ := r.Get(first)
	b, _ := r.Get(second)
	if a.Text() != "Plaie au bras. " {
		t.Fatalf("unexpected first text %q", a.Text())
	}
	if b.Text() != "" {
		t.Fatalf("second instance affected: %q", b.Text())
	}
	if value, _ := b.Section.Answer("zone"); !value.IsEmpty() {
		t.Fatalf("second instance answers affected: %q", value.String())
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	r := registry.New(testsupport.Reader(t), registry.WithKeyGenerator(sequentialKeys("k1", "k2", "k3")))
	ctx := context.Background()
	for _, id := range []string{"plaie", "fracture", "brulure"} {
		if _, err := r.Add(ctx, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	if !r.Remove("k2") {
		t.Fatalf("expected k2 removed")
	}
	if r.Remove("k2") {
		t.Fatalf("second remove must be a no-op")
	}
	if diff := cmp.Diff([]string{"k1", "k3"}, keysOf(r)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Get("k2"); !errors.Is(err, registry.ErrUnknownInstance) {
		t.Fatalf("expected ErrUnknownInstance, got %v", err)
	}
}

func TestUpdateUnknownInstanceIsNoop(t *testing.T) {
	r := registry.New(testsupport.Reader(t))

	applied, err := r.Update("missing", section.UserEdited{Text: "x"})
	if applied || err != nil {
		t.Fatalf("expected silent no-op, got applied=%v err=%v", applied, err)
	}
}

func TestUpdateSurfacesValidationErrors(t *testing.T) {
	r := registry.New(testsupport.Reader(t))
	key, _ := r.Add(context.Background(), "fracture")

	applied, err := r.Update(key, section.AnswerChanged{Key: "membre", Value: model.Text("tête")})
	if !applied || !errors.Is(err, section.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got applied=%v err=%v", applied, err)
	}
}

func TestInstancesReturnsCopy(t *testing.T) {
	r := registry.New(testsupport.Reader(t))
	for i := 0; i < 3; i++ {
		if _, err := r.Add(context.Background(), "plaie"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	list := r.Instances()
	list[0] = nil
	if r.Instances()[0] == nil {
		t.Fatalf("Instances must return a copy")
	}
	if r.Len() != 3 {
		t.Fatalf("unexpected len %d", r.Len())
	}
}
