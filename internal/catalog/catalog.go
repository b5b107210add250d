// Package catalog is the public, read-only view of projects. It never
// requires a session.
package catalog

import (
	"context"
	"strings"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterWeb      Filter = Filter(domain.CategoryWeb)
	FilterSecurity Filter = Filter(domain.CategorySecurity)
)

// ParseFilter maps a query value to a Filter; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterWeb, FilterSecurity:
		return f, nil
	default:
		return "", apperr.Invalid("category", "must be one of: all web security")
	}
}

// Source is satisfied by *service.ProjectService.
type Source interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
}

type Catalog struct {
	src Source
}

func New(src Source) *Catalog {
	return &Catalog{src: src}
}

// List returns projects newest first, narrowed to one category unless f is
// FilterAll.
func (c *Catalog) List(ctx context.Context, f Filter) ([]domain.Project, error) {
	items, err := c.src.List(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(items, f), nil
}

// Apply filters items by category, keeping their order.
func Apply(items []domain.Project, f Filter) []domain.Project {
	if f == FilterAll {
		return items
	}
	out := make([]domain.Project, 0, len(items))
	for _, p := range items {
		if Filter(p.Category) == f {
			out = append(out, p)
		}
	}
	return out
}

type Slide struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

type Detail struct {
	domain.Project
	DisplayImages []string `json:"display_images"`
	Slides        []Slide  `json:"slides"`
}

func (c *Catalog) Detail(ctx context.Context, id string) (*Detail, error) {
	p, err := c.src.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Project: *p, DisplayImages: DisplayImages(*p), Slides: Slides(*p)}, nil
}

// DisplayImages returns the images newest upload first.
func DisplayImages(p domain.Project) []string {
	out := make([]string, len(p.Images))
	for i, u := range p.Images {
		out[len(p.Images)-1-i] = u
	}
	return out
}

// Thumbnail is the last uploaded image, or "" when there is none.
func Thumbnail(p domain.Project) string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[len(p.Images)-1]
}

// Slides pairs each display image with the index the viewer opens at.
func Slides(p domain.Project) []Slide {
	display := DisplayImages(p)
	out := make([]Slide, len(display))
	for i, u := range display {
		out[i] = Slide{Index: i, URL: u}
	}
	return out
}

type Card struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Link        string          `json:"link,omitempty"`
	Tech        []string        `json:"tech"`
	Category    domain.Category `json:"category"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
}

func Cards(items []domain.Project) []Card {
	out := make([]Card, 0, len(items))
	for _, p := range items {
		out = append(out, Card{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Link:        p.Link,
			Tech:        p.Tech,
			Category:    p.Category,
			Thumbnail:   Thumbnail(p),
		})
	}
	return out
}
