// Package registry tracks the form instances the operator has added to a
// report, in creation order.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/section"
)

var (
	// ErrUnknownDefinition is returned by Add when the catalog has no entry
	// for the requested id.
	ErrUnknownDefinition = errors.New("registry: unknown definition")
	// ErrUnknownInstance is returned by lookups that need an instance to
	// exist. Mutations on unknown keys are silent no-ops instead.
	ErrUnknownInstance = errors.New("registry: unknown instance")
)

// Instance is one live form: a key and its section state.
type Instance struct {
	Key          string
	DefinitionID string
	Section      *section.Section
}

// Text returns the instance's visible text.
func (i *Instance) Text() string {
	return i.Section.Text()
}

// KeyGenerator produces instance keys.
type KeyGenerator func() string

// Registry owns the live instances. It is not safe for concurrent use.
type Registry struct {
	catalog   catalog.Reader
	logger    *zap.Logger
	newKey    KeyGenerator
	instances []*Instance
	byKey     map[string]*Instance
}

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithKeyGenerator replaces the uuid key source.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newKey = gen
		}
	}
}

// New creates an empty registry resolving definitions through reader.
func New(reader catalog.Reader, opts ...Option) *Registry {
	r := &Registry{
		catalog: reader,
		logger:  zap.NewNop(),
		newKey:  uuid.NewString,
		byKey:   make(map[string]*Instance),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Add creates an instance of definitionID with empty answers in auto mode and
// returns its key.
func (r *Registry) Add(ctx context.Context, definitionID string) (string, error) {
	if r.catalog == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownDefinition, definitionID)
	}
	def, err := r.catalog.Get(ctx, definitionID)
	if errors.Is(err, catalog.ErrNotFound) {
		return "", fmt.Errorf("%w: %q", ErrUnknownDefinition, definitionID)
	}
	if err != nil {
		return "", fmt.Errorf("registry: resolve %q: %w", definitionID, err)
	}
	return r.AddDefinition(def), nil
}

// AddDefinition creates an instance from an already resolved definition.
func (r *Registry) AddDefinition(def model.FieldSetDefinition) string {
	key := r.newKey()
	for r.taken(key) {
		key = r.newKey()
	}

	inst := &Instance{Key: key, DefinitionID: def.ID, Section: section.New(def)}
	r.instances = append(r.instances, inst)
	r.byKey[key] = inst
	r.logger.Debug("instance added", zap.String("key", key), zap.String("definition", def.ID))
	return key
}

func (r *Registry) taken(key string) bool {
	if key == "" {
		return true
	}
	_, ok := r.byKey[key]
	return ok
}

// Remove drops the instance with key. It reports false when key is unknown.
func (r *Registry) Remove(key string) bool {
	if _, ok := r.byKey[key]; !ok {
		return false
	}
	delete(r.byKey, key)
	for i, inst := range r.instances {
		if inst.Key == key {
			r.instances = append(r.instances[:i], r.instances[i+1:]...)
			break
		}
	}
	r.logger.Debug("instance removed", zap.String("key", key))
	return true
}

// Update routes ev to the instance with key and reports whether the key was
// found. Unknown keys yield (false, nil).
func (r *Registry) Update(key string, ev section.Event) (bool, error) {
	inst, ok := r.byKey[key]
	if !ok {
		r.logger.Debug("update for unknown instance ignored", zap.String("key", key))
		return false, nil
	}
	return true, inst.Section.Apply(ev)
}

// Get returns the instance with key.
func (r *Registry) Get(key string) (*Instance, error) {
	inst, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstance, key)
	}
	return inst, nil
}

// Instances returns the live instances in creation order.
func (r *Registry) Instances() []*Instance {
	return append([]*Instance(nil), r.instances...)
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	return len(r.instances)
}
