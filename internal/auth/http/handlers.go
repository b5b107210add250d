package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apihttp "github.com/portfolio-site/portfolio-backend/internal/api/http"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
)

// SignIn exchanges email and password for a session. Provider rejections are
// returned with the provider's own message.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	s, err := h.authn.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apihttp.Fail(c, err)
		return
	}

	zerolog.Ctx(c.Request.Context()).Info().Str("uid", s.UID).Msg("admin signed in")
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

func (h *Handler) SignOut(c *gin.Context) {
	s := auth.SessionFrom(c)
	if err := h.authn.SignOut(c.Request.Context(), s); err != nil {
		// the token is already gone from the cache; revocation is best effort
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("revoke refresh tokens failed")
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CurrentSession echoes the verified session without its refresh token.
func (h *Handler) CurrentSession(c *gin.Context) {
	s := *auth.SessionFrom(c)
	s.RefreshToken = ""
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}
