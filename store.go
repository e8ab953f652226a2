package s3templates

import (
	"context"
	"time"
)

// ObjectInfo describes one stored object as returned by a listing page.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time // zero when the store omits it
}

// ObjectStore is the contract this package consumes from an object-store
// client. Implementations own transport, authentication and retry; this
// layer only needs listing, byte fetch and existence checks.
type ObjectStore interface {
	// ListObjects calls fn for each page of the bucket listing until the
	// listing is exhausted or fn returns false. lastPage is true on the
	// final page.
	ListObjects(ctx context.Context, bucket string, fn func(objects []ObjectInfo, lastPage bool) bool) error
	// GetObjectBytes returns the full content of one object.
	GetObjectBytes(ctx context.Context, bucket, key string) ([]byte, error)
	// ObjectExists reports whether the key addresses a stored object.
	// A missing object is (false, nil), not an error.
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
}

// Object is a handle to one remote object. It carries the metadata seen at
// listing time; content and existence are fetched on demand through the store.
type Object struct {
	store        ObjectStore
	bucket       string
	key          string
	lastModified time.Time
}

// NewObject builds a handle for key in bucket. lastModified may be zero when
// the store did not supply one; Resolver substitutes its clock in that case.
func NewObject(store ObjectStore, bucket, key string, lastModified time.Time) *Object {
	return &Object{store: store, bucket: bucket, key: key, lastModified: lastModified}
}

// Key returns the storage key this handle addresses.
func (o *Object) Key() string { return o.key }

// LastModified returns the timestamp seen at listing time; zero when the
// store omitted it.
func (o *Object) LastModified() time.Time { return o.lastModified }

// Content fetches the object bytes from the store.
func (o *Object) Content(ctx context.Context) ([]byte, error) {
	return o.store.GetObjectBytes(ctx, o.bucket, o.key)
}

// Exists re-checks the object against the store.
func (o *Object) Exists(ctx context.Context) (bool, error) {
	return o.store.ObjectExists(ctx, o.bucket, o.key)
}
