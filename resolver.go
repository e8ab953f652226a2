package s3templates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Resolver maps template names to objects in one bucket. It owns the shared
// object cache for its lifetime: lookups are answered from the cache, and a
// full miss triggers one full bucket listing before the name is reported as
// not found. Safe for concurrent use.
type Resolver struct {
	store      ObjectStore
	bucket     string
	searchPath []string
	cache      *objectCache
	log        *slog.Logger
	now        func() time.Time // injectable for tests

	// optional miss dampening, both off by default (every miss re-lists)
	refreshInterval time.Duration
	negCache        *expirable.LRU[string, time.Time]

	refreshMu   sync.Mutex
	lastRefresh time.Time
}

// New creates a Resolver for bucket backed by store. A nil store or empty
// bucket is tolerated: every resolution then fails with ErrNoBucket without
// touching the network.
func New(store ObjectStore, bucket string, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		bucket: bucket,
		cache:  newObjectCache(),
		log:    slog.Default().With("system", "s3templates"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the object handle for name, trying the bare name first and
// then each search-path prefix in order. On a full cache miss it refreshes
// the cache from one full bucket listing and retries once; a name still
// unmatched after that resolves to ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Object, error) {
	if r.store == nil || r.bucket == "" {
		return nil, ErrNoBucket
	}
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrNoPath
	}
	candidates := ExpandPaths(name, r.searchPath)

	if obj, ok := r.lookup(candidates); ok {
		resolveCacheHits.Inc()
		return obj, nil
	}
	resolveCacheMisses.Inc()

	if r.negCache != nil {
		if _, ok := r.negCache.Get(name); ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
	}
	if r.refreshInterval > 0 && r.now().Sub(r.lastRefreshAt()) < r.refreshInterval {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}
	if obj, ok := r.lookup(candidates); ok {
		return obj, nil
	}
	if r.negCache != nil {
		r.negCache.Add(name, r.now())
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Refresh repopulates the cache from a full bucket listing. Concurrent
// callers share one in-flight listing; a failed listing leaves previously
// cached entries untouched and reports the error to every waiter.
func (r *Resolver) Refresh(ctx context.Context) error {
	if r.store == nil || r.bucket == "" {
		return ErrNoBucket
	}
	return r.cache.refreshAll(ctx, r.listAll)
}

// Exists reports whether name resolves to a stored object. Ordinary
// not-found is (false, nil); configuration and store failures are errors.
func (r *Resolver) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.Resolve(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ModifiedTime returns the last-modified timestamp for name. A name that does
// not resolve yields ok=false with a nil error, so callers can treat it as a
// cache miss rather than a failure. When the store omitted the timestamp the
// resolver's clock substitutes "now".
func (r *Resolver) ModifiedTime(ctx context.Context, name string) (time.Time, bool, error) {
	obj, err := r.Resolve(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	mt := obj.LastModified()
	if mt.IsZero() {
		mt = r.now()
	}
	return mt, true, nil
}

// Content resolves name and fetches the object bytes, returning them with
// the last-modified timestamp. Fetch failures wrap ErrStore with the
// underlying cause.
func (r *Resolver) Content(ctx context.Context, name string) ([]byte, time.Time, error) {
	obj, err := r.Resolve(ctx, name)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := obj.Content(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	mt := obj.LastModified()
	if mt.IsZero() {
		mt = r.now()
	}
	return data, mt, nil
}

// Keys returns the sorted storage keys currently cached, for diagnostics.
func (r *Resolver) Keys() []string {
	return r.cache.keys()
}

// lookup checks the candidates against the cache in priority order.
func (r *Resolver) lookup(candidates []string) (*Object, bool) {
	for _, key := range candidates {
		if obj, ok := r.cache.get(key); ok {
			return obj, true
		}
	}
	return nil, false
}

// listAll drains the full paginated bucket listing into object handles.
func (r *Resolver) listAll(ctx context.Context) ([]*Object, error) {
	start := time.Now()
	var objects []*Object
	err := r.store.ListObjects(ctx, r.bucket, func(infos []ObjectInfo, _ bool) bool {
		for _, info := range infos {
			objects = append(objects, NewObject(r.store, r.bucket, info.Key, info.LastModified))
		}
		return true
	})
	if err != nil {
		bucketRefreshes.WithLabelValues("error").Inc()
		r.log.Warn("bucket listing failed", "bucket", r.bucket, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	bucketRefreshes.WithLabelValues("ok").Inc()
	bucketRefreshDuration.Observe(time.Since(start).Seconds())
	r.setLastRefresh(r.now())
	r.log.Debug("bucket listing refreshed", "bucket", r.bucket, "objects", len(objects))
	return objects, nil
}

func (r *Resolver) lastRefreshAt() time.Time {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()
	return r.lastRefresh
}

func (r *Resolver) setLastRefresh(t time.Time) {
	r.refreshMu.Lock()
	r.lastRefresh = t
	r.refreshMu.Unlock()
}
