package http

import (
	"context"

	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
	"github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

// Projects is satisfied by *service.ProjectService.
type Projects interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, sess *authdomain.Session, f domain.Fields, files []media.File) (*service.CreateResult, error)
	Update(ctx context.Context, sess *authdomain.Session, id string, f domain.Fields) error
	Delete(ctx context.Context, sess *authdomain.Session, id string, images []string) (*service.DeleteResult, error)
}

// Handler bundles the dependencies for the admin project endpoints.
type Handler struct {
	svc Projects
}

func New(svc Projects) *Handler {
	return &Handler{svc: svc}
}

type updateReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Tech        []string `json:"tech"`
	Category    string   `json:"category"`
}

func (r updateReq) fields() domain.Fields {
	return domain.Fields{
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
		Tech:        r.Tech,
		Category:    domain.Category(r.Category),
	}
}
