package graphql

import (
	"bytes"
	"encoding/json"
	"sort"
	"sync"

	perr "inkverse/internal/platform/errors"
)

const (
	refKey    = "__ref"
	fieldsKey = "__fields"
	typeKey   = "__typename"

	maxDepth = 32
)

// Cache is a normalized store of query results
//
// Objects that carry __typename plus uuid or id are stored once under
// "Typename:id" and referenced from every result that contains them, so a
// refetch of one screen updates the same entity everywhere. Each operation
// keeps its result tree with references in place of entities; a reference
// remembers which fields the operation selected, and a read misses when the
// entity or one of those fields is gone.
type Cache struct {
	mu       sync.RWMutex
	entities map[string]map[string]any
	roots    map[string]any
}

// CacheStats is a point-in-time size report
type CacheStats struct {
	Entities int `json:"entities"`
	Roots    int `json:"roots"`
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{
		entities: make(map[string]map[string]any),
		roots:    make(map[string]any),
	}
}

// Write normalizes data and stores it as the result of the operation key
func (c *Cache) Write(key string, data json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "cache: decode %s", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	norm, err := c.normalize(v, 0)
	if err != nil {
		return err
	}
	c.roots[key] = norm
	return nil
}

func (c *Cache) normalize(v any, depth int) (any, error) {
	if depth > maxDepth {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "cache: result nested deeper than %d", maxDepth)
	}
	switch t := v.(type) {
	case map[string]any:
		fields := make(map[string]any, len(t))
		for k, fv := range t {
			n, err := c.normalize(fv, depth+1)
			if err != nil {
				return nil, err
			}
			fields[k] = n
		}
		id, ok := entityKey(t)
		if !ok {
			return fields, nil
		}
		ent := c.entities[id]
		if ent == nil {
			ent = make(map[string]any, len(fields))
			c.entities[id] = ent
		}
		names := make([]any, 0, len(fields))
		for k, fv := range fields {
			ent[k] = fv
			names = append(names, k)
		}
		sort.Slice(names, func(i, j int) bool { return names[i].(string) < names[j].(string) })
		return map[string]any{refKey: id, fieldsKey: names}, nil

	case []any:
		out := make([]any, len(t))
		for i, iv := range t {
			n, err := c.normalize(iv, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil

	default:
		return t, nil
	}
}

func entityKey(m map[string]any) (string, bool) {
	tn, _ := m[typeKey].(string)
	if tn == "" {
		return "", false
	}
	for _, f := range [...]string{"uuid", "id"} {
		switch id := m[f].(type) {
		case string:
			if id != "" {
				return tn + ":" + id, true
			}
		case json.Number:
			return tn + ":" + id.String(), true
		}
	}
	return "", false
}

// Read rebuilds the stored result for key
func (c *Cache) Read(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	root, ok := c.roots[key]
	if !ok {
		return nil, false
	}
	out, ok := c.denormalize(root, 0)
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) denormalize(v any, depth int) (any, bool) {
	if depth > maxDepth {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		if id, ok := t[refKey].(string); ok {
			ent, ok := c.entities[id]
			if !ok {
				return nil, false
			}
			names, _ := t[fieldsKey].([]any)
			out := make(map[string]any, len(names))
			for _, n := range names {
				name, _ := n.(string)
				fv, ok := ent[name]
				if !ok {
					return nil, false
				}
				d, ok := c.denormalize(fv, depth+1)
				if !ok {
					return nil, false
				}
				out[name] = d
			}
			return out, true
		}
		out := make(map[string]any, len(t))
		for k, fv := range t {
			d, ok := c.denormalize(fv, depth+1)
			if !ok {
				return nil, false
			}
			out[k] = d
		}
		return out, true

	case []any:
		out := make([]any, len(t))
		for i, iv := range t {
			d, ok := c.denormalize(iv, depth+1)
			if !ok {
				return nil, false
			}
			out[i] = d
		}
		return out, true

	default:
		return t, true
	}
}

// Entity returns the stored fields of one entity, references left in place
func (c *Cache) Entity(typename, id string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.entities[typename+":"+id]
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(ent)
	if err != nil {
		return nil, false
	}
	return b, true
}

// Evict drops one entity; results that reference it miss until refetched
func (c *Cache) Evict(typename, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := typename + ":" + id
	if _, ok := c.entities[k]; !ok {
		return false
	}
	delete(c.entities, k)
	return true
}

// EvictRoot drops the stored result of one operation key
func (c *Cache) EvictRoot(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.roots[key]; !ok {
		return false
	}
	delete(c.roots, key)
	return true
}

// Reset empties the cache
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = make(map[string]map[string]any)
	c.roots = make(map[string]any)
}

// Stats reports the number of entities and stored results
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Entities: len(c.entities), Roots: len(c.roots)}
}
