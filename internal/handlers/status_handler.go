package handlers

import (
	"net/http"

	"winelink/internal/services"
	"winelink/internal/web"

	"github.com/gin-gonic/gin"
)

// StatusHandler serves the diagnostics endpoints. Both answer 200 even when
// the store is down; the body carries ok=false instead.
type StatusHandler struct {
	*BaseHandler
	reconcileService services.ReconcileService
}

func NewStatusHandler(base *BaseHandler, reconcileService services.ReconcileService) *StatusHandler {
	return &StatusHandler{
		BaseHandler:      base,
		reconcileService: reconcileService,
	}
}

func (h *StatusHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/status.json", h.Status)
	r.GET("/scan", h.Scan)
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.reconcileService.Status(c.Request.Context(), h.GetDB(c)))
}

// Scan renders the reconciliation report as HTML, or JSON/plain text via ?format=.
func (h *StatusHandler) Scan(c *gin.Context) {
	report := h.reconcileService.Scan(c.Request.Context(), h.GetDB(c))
	h.metrics.RecordScan(report.OK)

	switch c.Query("format") {
	case "json":
		c.JSON(http.StatusOK, report)
	case "text":
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := services.WriteReportText(c.Writer, report); err != nil {
			_ = c.Error(err)
		}
	default:
		c.HTML(http.StatusOK, web.ScanPage, report)
	}
}
