package http

import (
	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/portfolio-backend/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sign-in", h.SignIn)

	authed := rg.Group("", middleware.RequireSession(h.authn))
	authed.POST("/sign-out", h.SignOut)
	authed.GET("/session", h.CurrentSession)
}
