package handlers

import (
	"net/http"

	"winelink/internal/qrcode"
	"winelink/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type QRHandler struct {
	*BaseHandler
	generator *qrcode.Generator
}

func NewQRHandler(base *BaseHandler, generator *qrcode.Generator) *QRHandler {
	return &QRHandler{
		BaseHandler: base,
		generator:   generator,
	}
}

func (h *QRHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/vinery/qr/:name", h.QRCode)
}

// QRCode returns a PNG linking to the viewer page for name, or to the
// catalog root for qrcode.CatalogPage.
func (h *QRHandler) QRCode(c *gin.Context) {
	png, err := h.generator.Generate(c.Param("name"))
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	h.metrics.RecordQRCode()
	c.Data(http.StatusOK, "image/png", png)
}
