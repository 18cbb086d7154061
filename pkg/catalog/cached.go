package catalog

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/goliatone/go-reportgen/pkg/model"
)

const listKey = "\x00list"

// Cached keeps recent Get and List results of another Reader for a TTL.
// Misses (ErrNotFound) are not cached.
type Cached struct {
	next  Reader
	cache *cache.Cache
}

var _ Reader = (*Cached)(nil)

// NewCached wraps next. A non-positive ttl falls back to five minutes.
func NewCached(next Reader, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *Cached) Get(ctx context.Context, id string) (model.FieldSetDefinition, error) {
	if x, found := c.cache.Get(id); found {
		return x.(model.FieldSetDefinition).Clone(), nil
	}
	def, err := c.next.Get(ctx, id)
	if err != nil {
		return model.FieldSetDefinition{}, err
	}
	c.cache.Set(id, def.Clone(), cache.DefaultExpiration)
	return def, nil
}

func (c *Cached) List(ctx context.Context) ([]model.FieldSetDefinition, error) {
	if x, found := c.cache.Get(listKey); found {
		return cloneAll(x.([]model.FieldSetDefinition)), nil
	}
	defs, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(listKey, cloneAll(defs), cache.DefaultExpiration)
	return defs, nil
}

// Invalidate drops every cached entry, e.g. after an import.
func (c *Cached) Invalidate() {
	c.cache.Flush()
}

func cloneAll(defs []model.FieldSetDefinition) []model.FieldSetDefinition {
	out := make([]model.FieldSetDefinition, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.Clone())
	}
	return out
}
