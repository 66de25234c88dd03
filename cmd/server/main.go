package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/hotdog-classifier/backend/internal/api"
	"github.com/hotdog-classifier/backend/internal/blob"
	"github.com/hotdog-classifier/backend/internal/classifier"
	"github.com/hotdog-classifier/backend/internal/config"
	"github.com/hotdog-classifier/backend/internal/store"
	"github.com/hotdog-classifier/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	// Classifier
	cls, err := buildClassifier(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize classifier", "error", err)
	}

	// Record store: Postgres when configured, process memory otherwise
	var records store.RecordStore
	var pinger api.Pinger
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL, cfg.Database.PoolSize)
		if err != nil {
			sugar.Fatalw("failed to connect to database", "error", err)
		}
		defer pg.Close()
		records = pg
		pinger = pg
		sugar.Infow("database persistence enabled")
	} else {
		records = store.NewMemoryStore()
		sugar.Infow("no DATABASE_URL set, history is kept in memory only")
	}

	// Object storage
	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize object storage", "error", err)
	}
	if blobs == nil {
		sugar.Infow("object storage disabled, original images are not kept")
	}

	handlers := api.NewHandlers(&api.Dependencies{
		Classifier: cls,
		Records:    records,
		Blobs:      blobs,
		DBPinger:   pinger,
		Config:     cfg,
		Logger:     sugar,
		Version:    Version,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Server.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/health" ||
				c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	if cfg.Server.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Skipper: func(c echo.Context) bool {
				// Image responses are already compressed.
				return strings.HasSuffix(c.Request().URL.Path, "/image")
			},
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins(),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// API routes
	api.RegisterRoutes(e, handlers)

	// Embedded frontend
	if web.HasEmbeddedFiles() {
		if err := web.RegisterStaticRoutes(e); err != nil {
			sugar.Warnw("failed to register static routes", "error", err)
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	sugar.Infow("starting server",
		"version", Version,
		"buildTime", BuildTime,
		"addr", cfg.GetServerAddr(),
		"classifier", cfg.Classifier.Provider,
		"storage", cfg.Storage.Backend,
	)

	e.Logger.Fatal(e.StartServer(s))
}

// buildClassifier constructs the configured classifier backend.
func buildClassifier(cfg *config.Config) (classifier.Classifier, error) {
	rules := classifier.DefaultRules()
	if cfg.Classifier.RulesPath != "" {
		loaded, err := classifier.LoadRules(cfg.Classifier.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	switch cfg.Classifier.Provider {
	case "stub":
		return classifier.NewStubClassifier(), nil
	case "openai":
		// The client reads OPENAI_API_KEY from the environment.
		client := openai.NewClient()
		return classifier.NewOpenAIClassifier(&client, cfg.Classifier.Model, cfg.Classifier.Prompt, rules), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider: %q", cfg.Classifier.Provider)
	}
}

// buildBlobStore constructs the configured object storage backend.
// A nil store disables image persistence.
func buildBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case "disabled":
		return nil, nil
	case "local":
		return blob.NewLocalStore(cfg.Storage.LocalDir)
	case "s3":
		return blob.NewS3Store(ctx, blob.S3Options{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			PathStyle: cfg.Storage.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
