package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/storage/objectstore"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// flakyStore fails the upload whose call number is in failOn.
type flakyStore struct {
	*objectstore.Memory
	calls  int
	failOn map[int]error
}

func (s *flakyStore) Upload(ctx context.Context, path string, body []byte, opts objectstore.UploadOptions) error {
	s.calls++
	if err, ok := s.failOn[s.calls]; ok {
		return err
	}
	return s.Memory.Upload(ctx, path, body, opts)
}

func fixedClock() func() time.Time {
	t := time.UnixMilli(1700000000000)
	return func() time.Time { return t }
}

func TestPipeline_UploadPreservesOrder(t *testing.T) {
	store := objectstore.NewMemory("https://cdn.example.com/projects")
	p := NewPipeline(store, WithClock(fixedClock()))

	urls, err := p.Upload(context.Background(), []File{
		{Name: "A.png", Data: pngHeader},
		{Name: "b.png", Data: pngHeader},
		{Name: "c.png", Data: pngHeader},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/projects/1700000000000-a.png",
		"https://cdn.example.com/projects/1700000000001-b.png",
		"https://cdn.example.com/projects/1700000000002-c.png",
	}, urls)
}

func TestPipeline_IdenticalNamesGetDistinctPaths(t *testing.T) {
	store := objectstore.NewMemory("https://cdn.example.com")
	p := NewPipeline(store, WithClock(fixedClock()))

	urls, err := p.Upload(context.Background(), []File{
		{Name: "shot.png", Data: pngHeader},
		{Name: "shot.png", Data: pngHeader},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.NotEqual(t, urls[0], urls[1])

	paths, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestPipeline_StampsAdvanceAcrossBatches(t *testing.T) {
	p := NewPipeline(objectstore.NewMemory(""), WithClock(fixedClock()))

	first, err := p.Upload(context.Background(), []File{{Name: "x.png", Data: pngHeader}})
	require.NoError(t, err)
	second, err := p.Upload(context.Background(), []File{{Name: "x.png", Data: pngHeader}})
	require.NoError(t, err)
	assert.NotEqual(t, first[0], second[0])
}

func TestPipeline_ObjectOptions(t *testing.T) {
	store := objectstore.NewMemory("")
	p := NewPipeline(store, WithClock(fixedClock()))

	_, err := p.Upload(context.Background(), []File{
		{Name: "sniffed.png", Data: pngHeader},
		{Name: "declared.webp", Data: []byte("RIFF"), ContentType: "image/webp"},
	})
	require.NoError(t, err)

	obj, ok := store.Get("1700000000000-sniffed.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, DefaultCacheControl, obj.CacheControl)

	obj, ok = store.Get("1700000000001-declared.webp")
	require.True(t, ok)
	assert.Equal(t, "image/webp", obj.ContentType)
}

func TestPipeline_AbortsOnFirstFailure(t *testing.T) {
	boom := errors.New("bucket unavailable")
	store := &flakyStore{Memory: objectstore.NewMemory("https://cdn"), failOn: map[int]error{2: boom}}
	p := NewPipeline(store, WithClock(fixedClock()))

	urls, err := p.Upload(context.Background(), []File{
		{Name: "one.png", Data: pngHeader},
		{Name: "two.png", Data: pngHeader},
		{Name: "three.png", Data: pngHeader},
	})
	assert.Nil(t, urls)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ue.Index)
	assert.Equal(t, "two.png", ue.Name)
	assert.True(t, strings.HasSuffix(ue.Path, "-two.png"))
	assert.Equal(t, []string{"1700000000000-one.png"}, ue.Committed)
	assert.Equal(t, 2, store.calls, "file three is never attempted")

	paths, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1700000000000-one.png"}, paths, "committed objects are not rolled back")
}

func TestPipeline_RefusesOverwrite(t *testing.T) {
	store := objectstore.NewMemory("")
	require.NoError(t, store.Upload(context.Background(), "1700000000000-a.png", pngHeader, objectstore.UploadOptions{}))
	p := NewPipeline(store, WithClock(fixedClock()))

	_, err := p.Upload(context.Background(), []File{{Name: "a.png", Data: pngHeader}})
	assert.ErrorIs(t, err, objectstore.ErrObjectExists)
}

func TestPipeline_EmptyBatch(t *testing.T) {
	urls, err := NewPipeline(objectstore.NewMemory("")).Upload(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
