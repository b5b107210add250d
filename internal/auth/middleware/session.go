package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// TokenVerifier is satisfied by *service.Authenticator.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.Session, error)
}

// RequireSession rejects requests without a valid bearer token and stores
// the resolved session under auth.CtxSession.
func RequireSession(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		s, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.ErrNoSession.Error()})
			return
		}

		c.Set(auth.CtxSession, s)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
