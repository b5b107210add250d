package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/media"
)

// Fail writes err using the shared {"ok": false, "error": ...} shape. Fields
// in extra are merged into the body.
func Fail(c *gin.Context, err error, extra ...gin.H) {
	status, body := errorBody(err)
	for _, e := range extra {
		for k, v := range e {
			body[k] = v
		}
	}
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	}
	c.JSON(status, body)
}

func errorBody(err error) (int, gin.H) {
	var (
		ve *apperr.ValidationError
		ae *authdomain.AuthError
		ue *media.UploadError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, gin.H{"ok": false, "error": ve.Error(), "field": ve.Field}
	case errors.Is(err, authdomain.ErrNoSession):
		return http.StatusUnauthorized, gin.H{"ok": false, "error": authdomain.ErrNoSession.Error()}
	case errors.As(err, &ae):
		return http.StatusUnauthorized, gin.H{"ok": false, "error": ae.Message}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, gin.H{"ok": false, "error": err.Error()}
	case errors.As(err, &ue):
		return http.StatusBadGateway, gin.H{"ok": false, "error": "image upload failed", "file": ue.Name}
	default:
		return http.StatusInternalServerError, gin.H{"ok": false, "error": "operation failed"}
	}
}
