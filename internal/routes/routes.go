package routes

import (
	"winelink/internal/handlers"
	"winelink/internal/logger"
	"winelink/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every page, asset and diagnostics route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	m *metrics.Metrics,
) {
	root := ginRouter.Group("")
	{
		appHandlers.PageHandler.RegisterRoutes(root)
		appHandlers.CatalogHandler.RegisterRoutes(root)
		appHandlers.ManageHandler.RegisterRoutes(root)
		appHandlers.AssetHandler.RegisterRoutes(root)
		appHandlers.QRHandler.RegisterRoutes(root)
		appHandlers.StatusHandler.RegisterRoutes(root)
	}

	if m != nil {
		ginRouter.GET("/metrics", gin.WrapH(m.Handler()))
		logger.Info("Metrics route /metrics registered")
	}
}
