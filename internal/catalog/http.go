package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/portfolio-site/portfolio-backend/internal/api/http"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.detail)
}

func (h *Handler) list(c *gin.Context) {
	f, err := ParseFilter(c.Query("category"))
	if err != nil {
		apihttp.Fail(c, err)
		return
	}
	items, err := h.catalog.List(c.Request.Context(), f)
	if err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "category": f, "projects": Cards(items)})
}

func (h *Handler) detail(c *gin.Context) {
	d, err := h.catalog.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		apihttp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": d})
}
