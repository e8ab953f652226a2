// Package fsstore implements the object-store contract on top of a local
// directory tree, for development and tests. Each bucket is a subdirectory
// of the root; files below it are objects keyed by their slash-separated
// relative path.
package fsstore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mlevkov/s3templates"
)

// Ensures Store implements s3templates.ObjectStore.
var _ s3templates.ObjectStore = (*Store)(nil)

// Store serves objects from Root/<bucket>/<key>.
type Store struct {
	root string
}

// New creates a Store rooted at root.
func New(root string) *Store {
	return &Store{root: root}
}

// ListObjects walks the bucket directory and emits every file as one
// listing page. A bucket directory that does not exist lists as empty.
func (s *Store) ListObjects(ctx context.Context, bucket string, fn func(objects []s3templates.ObjectInfo, lastPage bool) bool) error {
	bucketPath := filepath.Join(s.root, bucket)
	var objects []s3templates.ObjectInfo
	err := filepath.WalkDir(bucketPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(bucketPath, path)
		if err != nil {
			return err
		}
		objects = append(objects, s3templates.ObjectInfo{
			Key:          filepath.ToSlash(rel),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if os.IsNotExist(err) {
		err = nil
	}
	if err != nil {
		return err
	}
	fn(objects, true)
	return nil
}

// GetObjectBytes reads the file behind key.
func (s *Store) GetObjectBytes(_ context.Context, bucket, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, bucket, key))
}

// ObjectExists reports whether key addresses a regular file.
func (s *Store) ObjectExists(_ context.Context, bucket, key string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.root, bucket, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
