package fsstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlevkov/s3templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, parts ...string) {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts[:len(parts)-1]...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(parts[len(parts)-1]), 0o644))
}

func TestStore_ListObjects(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "assets", "index.html", "<html/>")
	writeFile(t, root, "assets", "emails", "welcome.html", "hi")
	writeFile(t, root, "otherbucket", "ignored.txt", "x")

	s := New(root)
	var keys []string
	err := s.ListObjects(context.Background(), "assets", func(objects []s3templates.ObjectInfo, lastPage bool) bool {
		for _, obj := range objects {
			keys = append(keys, obj.Key)
			assert.Positive(t, obj.Size)
			assert.False(t, obj.LastModified.IsZero())
		}
		assert.True(t, lastPage)
		return true
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index.html", "emails/welcome.html"}, keys)
}

func TestStore_ListObjects_MissingBucketIsEmpty(t *testing.T) {
	t.Parallel()
	s := New(t.TempDir())
	pages := 0
	err := s.ListObjects(context.Background(), "nope", func(objects []s3templates.ObjectInfo, lastPage bool) bool {
		pages++
		assert.Empty(t, objects)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestStore_GetObjectBytes(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "assets", "emails", "welcome.html", "Hello!")

	s := New(root)
	data, err := s.GetObjectBytes(context.Background(), "assets", "emails/welcome.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello!"), data)

	_, err = s.GetObjectBytes(context.Background(), "assets", "missing")
	require.Error(t, err)
}

func TestStore_ObjectExists(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "assets", "emails", "welcome.html", "hi")

	s := New(root)
	ctx := context.Background()

	ok, err := s.ObjectExists(ctx, "assets", "emails/welcome.html")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ObjectExists(ctx, "assets", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// A directory is not an object.
	ok, err = s.ObjectExists(ctx, "assets", "emails")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_BacksResolver(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "assets", "emails", "welcome.html", "Hello, world!")

	r := s3templates.New(New(root), "assets",
		s3templates.WithSearchPath([]string{"emails"}),
	)
	data, mt, err := r.Content(context.Background(), "welcome.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello, world!"), data)
	assert.False(t, mt.IsZero())
}
