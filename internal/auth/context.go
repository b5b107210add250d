package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

const (
	CtxSession = "admin_session"
)

// SessionFrom returns the session set by middleware.RequireSession, or nil.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}
