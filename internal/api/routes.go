// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hotdog-classifier/backend/internal/blob"
	"github.com/hotdog-classifier/backend/internal/classifier"
	"github.com/hotdog-classifier/backend/internal/config"
	"github.com/hotdog-classifier/backend/internal/store"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Classifier classifier.Classifier
	Records    store.RecordStore
	Blobs      blob.Store // nil when object storage is disabled
	DBPinger   Pinger     // nil when no database is configured
	Config     *config.Config
	Logger     *zap.SugaredLogger
	Version    string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Classify ClassifyHandler
	History  HistoryHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	cfg := deps.Config
	return &Handlers{
		Health: NewHealthHandler(
			deps.Version,
			cfg.Classifier.Provider,
			cfg.Storage.Backend,
			deps.DBPinger,
		),
		Classify: NewClassifyHandler(
			deps.Classifier,
			deps.Records,
			deps.Blobs,
			cfg.Upload.MaxImageBytes,
			cfg.TypeAllowed,
			time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second,
			deps.Logger,
		),
		History: NewHistoryHandler(deps.Records, deps.Blobs, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Classification
	e.POST("/api/classify", handlers.Classify.HandleClassifyImage)
	e.POST("/api/classify/base64", handlers.Classify.HandleClassifyBase64)

	// History
	historyGroup := e.Group("/api/classifications")
	historyGroup.GET("", handlers.History.HandleListClassifications)
	historyGroup.GET("/msgpack", handlers.History.HandleExportClassificationsMsgpack)
	historyGroup.GET("/:id", handlers.History.HandleGetClassification)
	historyGroup.GET("/:id/image", handlers.History.HandleGetClassificationImage)
	historyGroup.DELETE("/:id", handlers.History.HandleDeleteClassification)
}
