package s3templates

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// detachCancel returns a context that is not cancelled when parent is cancelled,
// but still respects parent's deadline so a shared bucket listing does not hang.
// The caller should call the returned cancel when done to release the deadline timer.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx) // no-op cancel when no deadline, but same signature
}

// listFunc drains a full bucket listing into object handles keyed by their
// own storage keys.
type listFunc func(ctx context.Context) ([]*Object, error)

// objectCache is the shared key→handle store. Reads and single writes are
// guarded by mu; refreshAll collapses concurrent callers onto one in-flight
// listing via singleflight, so late arrivals wait for the shared result
// instead of issuing redundant listings.
type objectCache struct {
	mu    sync.RWMutex
	items map[string]*Object
	sf    singleflight.Group
}

func newObjectCache() *objectCache {
	return &objectCache{items: make(map[string]*Object)}
}

func (c *objectCache) get(key string) (*Object, bool) {
	c.mu.RLock()
	obj, ok := c.items[key]
	c.mu.RUnlock()
	return obj, ok
}

func (c *objectCache) put(key string, obj *Object) {
	c.mu.Lock()
	c.items[key] = obj
	c.mu.Unlock()
}

// keys returns the cached keys in sorted order.
func (c *objectCache) keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// refreshAll repopulates the cache from a full listing. The listing runs
// without the cache lock held; entries are committed under the lock only
// after the listing completed. A failed listing leaves the cache exactly as
// it was and the error propagates to every waiting caller.
func (c *objectCache) refreshAll(ctx context.Context, list listFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		listCtx, cancel := detachCancel(ctx)
		defer cancel()
		objects, err := list(listCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		for _, obj := range objects {
			c.items[obj.Key()] = obj
		}
		c.mu.Unlock()
		return nil, nil
	})
	return err
}
