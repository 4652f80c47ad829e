package handlers

import (
	"fmt"
	"strconv"

	"winelink/internal/logger"
	"winelink/internal/metrics"
	"winelink/pkg/apperrors"
	"winelink/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	metrics *metrics.Metrics
}

func NewBaseHandler(m *metrics.Metrics) *BaseHandler {
	return &BaseHandler{
		metrics: m,
	}
}

// GetDB returns the store handle DBMiddleware put on the context.
// A missing handle is a wiring bug, so it panics.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// IsReadOnly reports the flag ReadOnlyMiddleware set.
func (h *BaseHandler) IsReadOnly(c *gin.Context) bool {
	return c.GetBool(string(contextkeys.ReadOnlyContextKey))
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ParseQueryUint returns 0 when key is absent; anything unparsable is a bad request.
func ParseQueryUint(c *gin.Context, key string) (uint, error) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid query parameter: " + key + " is not a positive integer")
	}
	return uint(value), nil
}

func ParseQueryBool(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
