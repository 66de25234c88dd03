// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version        string
	classifierName string
	storageBackend string
	db             Pinger // nil when no database is configured
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, classifierName, storageBackend string, db Pinger) HealthHandler {
	return &HealthHandlerImpl{
		version:        version,
		classifierName: classifierName,
		storageBackend: storageBackend,
		db:             db,
	}
}

// HandleHealth returns server health status and dependency state
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	database := "disabled"
	if h.db != nil {
		database = "ok"
		if err := h.db.Ping(c.Request().Context()); err != nil {
			database = "unreachable"
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"version":    h.version,
		"classifier": h.classifierName,
		"database":   database,
		"storage":    h.storageBackend,
	})
}
