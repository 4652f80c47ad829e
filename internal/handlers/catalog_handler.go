package handlers

import (
	"net/http"

	"winelink/internal/services"
	"winelink/internal/web"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/winery/", h.Catalog)
}

// Catalog renders every wine; applyed_filters only preselects the
// client-side filter controls.
func (h *CatalogHandler) Catalog(c *gin.Context) {
	view, err := h.catalogService.Catalog(c.Request.Context(), h.GetDB(c), c.Query("applyed_filters"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, view)
		return
	}
	c.HTML(http.StatusOK, web.CatalogPage, view)
}
