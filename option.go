package s3templates

import (
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// negativeCacheSize bounds the known-missing name cache; entries also expire
// by TTL, so the bound only matters under sustained unique-miss load.
const negativeCacheSize = 4096

// Option configures a Resolver (functional options pattern).
type Option func(*Resolver)

// WithSearchPath sets the ordered directory prefixes tried after the bare
// template name. Entries are normalized and deduplicated at expansion time.
func WithSearchPath(dirs []string) Option {
	return func(r *Resolver) {
		r.searchPath = dirs
	}
}

// WithLogger overrides the resolver's logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRefreshInterval dampens miss-triggered refreshes: after a successful
// full listing, cache misses within d return not-found without re-listing
// the bucket. Zero (the default) re-lists on every full miss.
func WithRefreshInterval(d time.Duration) Option {
	return func(r *Resolver) {
		r.refreshInterval = d
	}
}

// WithNegativeCacheTTL remembers names that stayed unresolved after a
// refresh for d, so repeated lookups of a missing template do not each
// re-list the bucket. Zero (the default) disables negative caching.
func WithNegativeCacheTTL(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.negCache = expirable.NewLRU[string, time.Time](negativeCacheSize, nil, d)
		}
	}
}
