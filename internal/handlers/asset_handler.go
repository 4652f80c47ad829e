package handlers

import (
	"net/http"
	"path"

	"winelink/internal/assets"
	"winelink/internal/logger"
	"winelink/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	bottleCacheControl = "public, max-age=604800"

	assetKindDescription = "description"
	assetKindBottle      = "bottle"
)

// AssetHandler streams description cards and bottle photos from storage.
type AssetHandler struct {
	*BaseHandler
	locator *assets.Locator
}

func NewAssetHandler(base *BaseHandler, locator *assets.Locator) *AssetHandler {
	return &AssetHandler{
		BaseHandler: base,
		locator:     locator,
	}
}

func (h *AssetHandler) RegisterRoutes(r *gin.RouterGroup) {
	vinery := r.Group("/vinery")
	{
		vinery.GET("/description/:name", h.ServeDescription)
		vinery.GET("/pdfs/:name", h.ServeDescription) // legacy links
		vinery.GET("/bottles/:name", h.ServeBottle)
	}
}

func (h *AssetHandler) ServeDescription(c *gin.Context) {
	ctx := c.Request.Context()
	d := h.locator.ResolveDescription(ctx, c.Param("name"))

	if !h.locator.Storage().DirExists(ctx, d.Dir) {
		h.notFound(c, assetKindDescription, d.Path())
		return
	}
	h.serve(c, assetKindDescription, d.Path())
}

// ServeBottle only serves names the current bottle lookup points at.
func (h *AssetHandler) ServeBottle(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	if !assets.IsBottleExtension(path.Ext(name)) {
		h.notFound(c, assetKindBottle, name)
		return
	}
	if !h.locator.BuildBottleLookup(ctx, h.locator.Dirs().Bottles).Has(name) {
		h.notFound(c, assetKindBottle, name)
		return
	}

	c.Header("Cache-Control", bottleCacheControl)
	h.serve(c, assetKindBottle, h.locator.BottlePath(name))
}

func (h *AssetHandler) serve(c *gin.Context, kind, p string) {
	file, err := h.locator.Storage().Open(c.Request.Context(), p)
	if err != nil {
		h.notFound(c, kind, p)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	h.metrics.RecordAsset(kind, true)
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}

func (h *AssetHandler) notFound(c *gin.Context, kind, p string) {
	h.metrics.RecordAsset(kind, false)
	logger.CtxDebug(c.Request.Context(), "asset not found", "kind", kind, "path", p)
	apperrors.HandleError(c, apperrors.ErrAssetNotFound)
}
