// Package media turns admin-selected files into public image URLs.
package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/storage/objectstore"
)

const DefaultCacheControl = "max-age=3600"

type File struct {
	Name        string
	Data        []byte
	ContentType string
}

type Pipeline struct {
	store        objectstore.Store
	cacheControl string
	now          func() time.Time

	mu   sync.Mutex
	last int64
}

type Option func(*Pipeline)

func WithCacheControl(v string) Option {
	return func(p *Pipeline) {
		if v != "" {
			p.cacheControl = v
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(store objectstore.Store, opts ...Option) *Pipeline {
	p := &Pipeline{store: store, cacheControl: DefaultCacheControl, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Upload stores files one after another in input order and returns their
// public URLs in the same order. The first failure stops the batch; objects
// already stored stay in the bucket and are listed in the *UploadError.
func (p *Pipeline) Upload(ctx context.Context, files []File) ([]string, error) {
	log := zerolog.Ctx(ctx)
	urls := make([]string, 0, len(files))
	committed := make([]string, 0, len(files))

	for i, f := range files {
		path := fmt.Sprintf("%d-%s", p.stamp(), SanitizeFilename(f.Name))

		contentType := f.ContentType
		if contentType == "" {
			contentType = mimetype.Detect(f.Data).String()
		}

		err := p.store.Upload(ctx, path, f.Data, objectstore.UploadOptions{
			ContentType:  contentType,
			CacheControl: p.cacheControl,
		})
		if err != nil {
			log.Error().Err(err).Str("path", path).Int("committed", len(committed)).Msg("media: upload failed")
			return nil, &UploadError{Index: i, Name: f.Name, Path: path, Committed: committed, Err: err}
		}

		committed = append(committed, path)
		urls = append(urls, p.store.PublicURL(path))
		log.Debug().Str("path", path).Str("content_type", contentType).Msg("media: uploaded")
	}

	return urls, nil
}

// stamp returns a millisecond timestamp that is strictly greater than the
// previous one, so identical names never collide within a process.
func (p *Pipeline) stamp() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ms := p.now().UnixMilli()
	if ms <= p.last {
		ms = p.last + 1
	}
	p.last = ms
	return ms
}
