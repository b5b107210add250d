package objectstore

import (
	"context"
	"sort"
	"sync"
)

type Object struct {
	Body         []byte
	ContentType  string
	CacheControl string
}

// Memory keeps objects in process. It backs local runs without a bucket and
// the package tests of everything that uploads.
type Memory struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]Object
}

func NewMemory(baseURL string) *Memory {
	return &Memory{baseURL: baseURL, objects: make(map[string]Object)}
}

func (m *Memory) Upload(ctx context.Context, path string, body []byte, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[path]; ok {
		return ErrObjectExists
	}
	m.objects[path] = Object{
		Body:         append([]byte(nil), body...),
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
	}
	return nil
}

func (m *Memory) PublicURL(path string) string {
	return joinURL(m.baseURL, path)
}

// Remove ignores paths that do not exist, like a bucket batch delete.
func (m *Memory) Remove(ctx context.Context, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range paths {
		delete(m.objects, p)
	}
	return nil
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.objects))
	for p := range m.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) Get(path string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[path]
	return obj, ok
}
