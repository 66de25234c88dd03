// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
)

// ClassifyHandler handles image classification requests
type ClassifyHandler interface {
	HandleClassifyImage(c echo.Context) error
	HandleClassifyBase64(c echo.Context) error
}

// HistoryHandler handles classification history operations
type HistoryHandler interface {
	HandleListClassifications(c echo.Context) error
	HandleExportClassificationsMsgpack(c echo.Context) error
	HandleGetClassification(c echo.Context) error
	HandleGetClassificationImage(c echo.Context) error
	HandleDeleteClassification(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// Pinger reports reachability of a backing service.
// *store.PostgresStore satisfies it; it is nil for the memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}
