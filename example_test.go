package s3templates_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mlevkov/s3templates"
)

// memStore is a minimal in-memory ObjectStore used for the examples.
type memStore map[string][]byte

func (s memStore) ListObjects(_ context.Context, _ string, fn func(objects []s3templates.ObjectInfo, lastPage bool) bool) error {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	objects := make([]s3templates.ObjectInfo, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, s3templates.ObjectInfo{Key: key, LastModified: time.Unix(0, 0)})
	}
	fn(objects, true)
	return nil
}

func (s memStore) GetObjectBytes(_ context.Context, _ string, key string) ([]byte, error) {
	data, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("no such key %q", key)
	}
	return data, nil
}

func (s memStore) ObjectExists(_ context.Context, _ string, key string) (bool, error) {
	_, ok := s[key]
	return ok, nil
}

func Example() {
	store := memStore{
		"emails/welcome.html": []byte("Hello, {{ name }}!"),
	}
	resolver := s3templates.New(store, "assets",
		s3templates.WithSearchPath([]string{"emails"}),
	)

	data, _, err := resolver.Content(context.Background(), "welcome.html")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
	// Output: Hello, {{ name }}!
}

func ExampleResolver_Exists() {
	store := memStore{"pages/index.html": []byte("<html/>")}
	resolver := s3templates.New(store, "assets",
		s3templates.WithSearchPath([]string{"pages"}),
	)
	ctx := context.Background()

	ok, _ := resolver.Exists(ctx, "index.html")
	fmt.Println(ok)
	ok, _ = resolver.Exists(ctx, "missing.html")
	fmt.Println(ok)
	// Output:
	// true
	// false
}

func ExampleExpandPaths() {
	keys := s3templates.ExpandPaths("foo.html", []string{"layouts", "partials"})
	fmt.Println(keys)
	// Output: [foo.html layouts/foo.html partials/foo.html]
}
