package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/portfolio-site/portfolio-backend/internal/api/http"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/messages/domain"
)

// Inbox is satisfied by *service.Inbox.
type Inbox interface {
	List(ctx context.Context, sess *authdomain.Session) ([]domain.Message, error)
	MarkRead(ctx context.Context, sess *authdomain.Session, id string) error
	Delete(ctx context.Context, sess *authdomain.Session, id string) error
}

type Handler struct {
	inbox Inbox
}

func New(inbox Inbox) *Handler {
	return &Handler{inbox: inbox}
}

// Register attaches admin message routes; rg must already require a session.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("/:id/read", h.markRead)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.inbox.List(c.Request.Context(), auth.SessionFrom(c))
	if err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": items})
}

func (h *Handler) markRead(c *gin.Context) {
	if err := h.inbox.MarkRead(c.Request.Context(), auth.SessionFrom(c), c.Param("id")); err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.inbox.Delete(c.Request.Context(), auth.SessionFrom(c), c.Param("id")); err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
