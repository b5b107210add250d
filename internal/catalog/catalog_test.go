package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

type staticSource []domain.Project

func (s staticSource) List(context.Context) ([]domain.Project, error) { return s, nil }

func (s staticSource) Get(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range s {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sample() staticSource {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return staticSource{
		{ID: "p4", Title: "Recon Tool", Category: domain.CategorySecurity, Images: []string{"https://cdn/a.png", "https://cdn/b.png"}, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "p3", Title: "Shop", Category: domain.CategoryWeb, Images: []string{"https://cdn/s.png"}, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "p2", Title: "CTF Writeups", Category: domain.CategorySecurity, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p1", Title: "Blog", Category: domain.CategoryWeb, CreatedAt: base.Add(1 * time.Hour)},
	}
}

func ids(items []domain.Project) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{"": FilterAll, "all": FilterAll, "WEB": FilterWeb, " security ": FilterSecurity} {
		got, err := ParseFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFilter("mobile")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestList_FilterKeepsOrder(t *testing.T) {
	c := New(sample())
	ctx := context.Background()

	web, err := c.List(ctx, FilterWeb)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, ids(web))

	sec, err := c.List(ctx, FilterSecurity)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p2"}, ids(sec))
}

func TestList_AllIsUnionOfCategories(t *testing.T) {
	c := New(sample())
	ctx := context.Background()

	all, err := c.List(ctx, FilterAll)
	require.NoError(t, err)
	web, _ := c.List(ctx, FilterWeb)
	sec, _ := c.List(ctx, FilterSecurity)

	assert.Len(t, all, len(web)+len(sec))
	assert.ElementsMatch(t, ids(all), append(ids(web), ids(sec)...))
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}
}

func TestDisplayOrder(t *testing.T) {
	p := domain.Project{Images: []string{"urlA", "urlB"}}

	assert.Equal(t, []string{"urlB", "urlA"}, DisplayImages(p))
	assert.Equal(t, "urlB", Thumbnail(p))
	assert.Equal(t, []Slide{{0, "urlB"}, {1, "urlA"}}, Slides(p))
	assert.Equal(t, []string{"urlA", "urlB"}, p.Images, "storage order is not mutated")

	empty := domain.Project{}
	assert.Empty(t, DisplayImages(empty))
	assert.Equal(t, "", Thumbnail(empty))
}

func TestDetail_ReconToolScenario(t *testing.T) {
	d, err := New(sample()).Detail(context.Background(), "p4")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, d.Images)
	assert.Equal(t, []string{"https://cdn/b.png", "https://cdn/a.png"}, d.DisplayImages)
	assert.Equal(t, "https://cdn/b.png", Cards([]domain.Project{d.Project})[0].Thumbnail)

	_, err = New(sample()).Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(New(sample())).Register(r.Group("/projects"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?category=security", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Projects []Card `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Projects, 2)
	assert.Equal(t, "https://cdn/b.png", list.Projects[0].Thumbnail)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?category=mobile", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/p4", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Project struct {
			DisplayImages []string `json:"display_images"`
			Slides        []Slide  `json:"slides"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, []string{"https://cdn/b.png", "https://cdn/a.png"}, detail.Project.DisplayImages)
	assert.Equal(t, 1, detail.Project.Slides[1].Index)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
