// Package contact accepts messages from the public contact form.
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apihttp "github.com/portfolio-site/portfolio-backend/internal/api/http"
	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/messages/domain"
	"github.com/portfolio-site/portfolio-backend/internal/validation"
)

type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (s Submission) normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

// Store is satisfied by *repository.MessageRepository.
type Store interface {
	Insert(ctx context.Context, m *domain.Message) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates and stores a message. No session is needed.
func (s *Service) Submit(ctx context.Context, in Submission) (*domain.Message, error) {
	in = in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	m := &domain.Message{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, apperr.Persist("submit message", err)
	}
	zerolog.Ctx(ctx).Info().Str("message_id", m.ID).Msg("contact: message received")
	return m, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	var in Submission
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if _, err := h.svc.Submit(c.Request.Context(), in); err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}
