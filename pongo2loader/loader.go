// Package pongo2loader adapts a template resolver to pongo2's TemplateLoader
// interface, so a host engine can render templates straight out of a bucket:
//
//	set := pongo2.NewSet("bucket", pongo2loader.New(resolver))
//	tpl, err := set.FromCache("emails/welcome.html")
package pongo2loader

import (
	"bytes"
	"context"
	"io"
	"path"
	"time"

	"github.com/flosch/pongo2/v6"
)

// ContentSource is the subset of the resolver the loader needs.
type ContentSource interface {
	Content(ctx context.Context, name string) ([]byte, time.Time, error)
}

// Ensures Loader implements pongo2.TemplateLoader.
var _ pongo2.TemplateLoader = (*Loader)(nil)

// Loader fetches pongo2 template sources through a ContentSource.
type Loader struct {
	source  ContentSource
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout bounds each template fetch. pongo2's loader interface carries
// no context, so the bound is applied here. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// New creates a Loader over source. Panics if source is nil.
func New(source ContentSource, opts ...Option) *Loader {
	if source == nil {
		panic("pongo2loader: ContentSource must not be nil")
	}
	l := &Loader{source: source}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Abs resolves an include/extends reference relative to the including
// template, using slash-separated keys.
func (l *Loader) Abs(base, name string) string {
	if base == "" || path.IsAbs(name) {
		return name
	}
	return path.Join(path.Dir(base), name)
}

// Get fetches the template bytes for the given key.
func (l *Loader) Get(p string) (io.Reader, error) {
	ctx := context.Background()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	data, _, err := l.source.Content(ctx, p)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
