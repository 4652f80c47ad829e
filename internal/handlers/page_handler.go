package handlers

import (
	"net/http"
	"net/url"

	"winelink/internal/assets"
	"winelink/internal/web"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the pages that need no data: welcome and the viewer shell.
type PageHandler struct {
	*BaseHandler
}

func NewPageHandler(base *BaseHandler) *PageHandler {
	return &PageHandler{BaseHandler: base}
}

func (h *PageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Welcome)
	r.GET("/vinery/:name", h.Viewer)
}

func (h *PageHandler) Welcome(c *gin.Context) {
	c.HTML(http.StatusOK, web.WelcomePage, nil)
}

// Viewer renders the page a QR code points at; the card itself is loaded
// from the description route.
func (h *PageHandler) Viewer(c *gin.Context) {
	name, ext := assets.NormalizeDescriptionName(c.Param("name"))
	c.HTML(http.StatusOK, web.ViewerPage, gin.H{
		"Filename": name,
		"AssetURL": "/vinery/description/" + url.PathEscape(name),
		"IsImage":  ext != assets.ExtPDF,
	})
}
