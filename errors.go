package s3templates

import "errors"

// Sentinel errors for template resolution.
// All use prefix "s3templates:" for identification. Callers should use errors.Is.
var (
	// ErrNoPath indicates an empty template name (or one that normalizes to empty).
	ErrNoPath = errors.New("s3templates: no path specified")
	// ErrNoBucket indicates the resolver was built without a bucket or store.
	ErrNoBucket = errors.New("s3templates: no bucket configured")
	// ErrNotFound indicates no candidate key matched a stored object, even after a refresh.
	ErrNotFound = errors.New("s3templates: object not found")
	// ErrStore wraps listing or fetch failures from the underlying object store.
	ErrStore = errors.New("s3templates: store error")
)
