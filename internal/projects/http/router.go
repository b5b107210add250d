package http

import "github.com/gin-gonic/gin"

// Register attaches admin project routes; rg must already require a session.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
