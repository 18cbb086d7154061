package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-reportgen/pkg/model"
)

// ErrNotFound is returned by readers when no definition has the requested id.
var ErrNotFound = errors.New("catalog: definition not found")

// Reader resolves field-set definitions by id. List returns definitions in
// catalog order.
type Reader interface {
	Get(ctx context.Context, id string) (model.FieldSetDefinition, error)
	List(ctx context.Context) ([]model.FieldSetDefinition, error)
}

// Memory is an ordered in-memory Reader. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	order []string
	defs  map[string]model.FieldSetDefinition
}

var _ Reader = (*Memory)(nil)

// NewMemory builds a Memory reader. Later definitions replace earlier ones
// with the same id but keep the first position.
func NewMemory(defs ...model.FieldSetDefinition) *Memory {
	m := &Memory{defs: make(map[string]model.FieldSetDefinition, len(defs))}
	m.Put(defs...)
	return m
}

// Put inserts or replaces definitions.
func (m *Memory) Put(defs ...model.FieldSetDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, def := range defs {
		if _, exists := m.defs[def.ID]; !exists {
			m.order = append(m.order, def.ID)
		}
		m.defs[def.ID] = def.Clone()
	}
}

func (m *Memory) Get(ctx context.Context, id string) (model.FieldSetDefinition, error) {
	if err := ctx.Err(); err != nil {
		return model.FieldSetDefinition{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.defs[id]
	if !ok {
		return model.FieldSetDefinition{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return def.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]model.FieldSetDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.FieldSetDefinition, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.defs[id].Clone())
	}
	return out, nil
}

// Len returns the number of definitions held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
