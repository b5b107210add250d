// Package objectstore is the bucket that holds project images.
package objectstore

import (
	"context"
	"errors"
)

// ErrObjectExists is returned by Upload when the path is already taken.
// Uploads never replace an existing object.
var ErrObjectExists = errors.New("object already exists")

type UploadOptions struct {
	ContentType  string
	CacheControl string
}

type Store interface {
	Upload(ctx context.Context, path string, body []byte, opts UploadOptions) error
	PublicURL(path string) string
	Remove(ctx context.Context, paths []string) error
	List(ctx context.Context) ([]string, error)
}

func joinURL(base, path string) string {
	if base == "" {
		return "/" + path
	}
	if base[len(base)-1] == '/' {
		return base + path
	}
	return base + "/" + path
}
