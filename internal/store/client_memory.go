package store

import (
	"fmt"
	"sync"
)

// Origin models one storage origin shared by several execution contexts.
// Each call to [Origin.NewContext] produces an independent [KeyValue] handle
// over the same underlying map, mirroring how browser tabs share one
// origin-scoped store: a write through one handle is observed by every other
// handle's subscribers, but never by the writer's own.
//
// The zero quota means unlimited; a positive quota bounds the total byte size
// of stored values and makes Set fail with [ErrQuotaExceeded] past it, which
// is how tests exercise the degraded-persistence path.
type Origin struct {
	mu     sync.Mutex
	values map[string]string
	quota  int

	contexts []*memoryContext
}

// NewOrigin creates an empty origin with no storage quota.
func NewOrigin() *Origin {
	return &Origin{values: make(map[string]string)}
}

// NewOriginWithQuota creates an origin whose total stored value size is
// bounded by quota bytes.
func NewOriginWithQuota(quota int) *Origin {
	o := NewOrigin()
	o.quota = quota
	return o
}

// NewContext returns a new [KeyValue] handle over this origin, representing
// one execution context (one tab).
func (o *Origin) NewContext() KeyValue {
	o.mu.Lock()
	defer o.mu.Unlock()

	ctx := &memoryContext{
		origin: o,
		subs:   make(map[int]memorySubscription),
	}
	o.contexts = append(o.contexts, ctx)
	return ctx
}

type memorySubscription struct {
	key string
	fn  func(value string)
}

type memoryContext struct {
	origin *Origin

	mu      sync.Mutex
	subs    map[int]memorySubscription
	nextSub int
}

func (c *memoryContext) Get(key string) (string, error) {
	c.origin.mu.Lock()
	defer c.origin.mu.Unlock()

	value, ok := c.origin.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return value, nil
}

func (c *memoryContext) Set(key, value string) error {
	o := c.origin

	o.mu.Lock()
	if o.quota > 0 {
		total := len(value)
		for k, v := range o.values {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > o.quota {
			o.mu.Unlock()
			return fmt.Errorf("%w: key %q", ErrQuotaExceeded, key)
		}
	}
	o.values[key] = value

	// Snapshot the listeners of OTHER contexts under the origin lock, then
	// dispatch outside it so a listener may call back into the store.
	var listeners []func(string)
	for _, other := range o.contexts {
		if other == c {
			continue
		}
		other.mu.Lock()
		for _, sub := range other.subs {
			if sub.key == key {
				listeners = append(listeners, sub.fn)
			}
		}
		other.mu.Unlock()
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}

	return nil
}

func (c *memoryContext) Subscribe(key string, fn func(value string)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = memorySubscription{key: key, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
