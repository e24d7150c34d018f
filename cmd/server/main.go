package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gmassist/api/internal/config"
	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/eventbus"
	"github.com/gmassist/api/internal/generator"
	"github.com/gmassist/api/internal/handlers"
	"github.com/gmassist/api/internal/inference"
	"github.com/gmassist/api/internal/metrics"
	"github.com/gmassist/api/internal/middleware"
	"github.com/gmassist/api/internal/telemetry"
	"github.com/gmassist/api/internal/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/gmassist/api/docs" // Swagger docs
)

// @title AI Game Master Assistant API
// @version 0.1.0
// @description Generates NPCs, quests, locations, dialogue and magic items for tabletop campaigns.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	ctx := context.Background()

	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("GM assistant starting...",
		zap.String("version", handlers.Version),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			logger.Fatal("inference credential not found in the environment or .env", zap.Error(err))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if cfg.TelemetryEnabled {
		shutdownTelemetry, err := telemetry.InitTracer(ctx, "gm-assistant", handlers.Version, cfg.OTLPEndpoint)
		if err != nil {
			// Log but don't fail, as collector might be down
			logger.Error("failed to initialize telemetry", zap.Error(err))
		} else {
			defer func() {
				if err := shutdownTelemetry(ctx); err != nil {
					logger.Error("failed to shutdown telemetry", zap.Error(err))
				}
			}()
		}
	}

	var publisher *eventbus.Publisher
	if cfg.NATSURL != "" {
		publisher, err = eventbus.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			logger.Error("failed to connect to NATS, generation events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			logger.Info("connected to NATS", zap.String("prefix", cfg.NATSSubjectPrefix))
		}
	}

	gateway, err := inference.New(ctx, cfg.ProviderConfig())
	if err != nil {
		logger.Fatal("failed to create inference gateway", zap.Error(err))
	}
	defer gateway.Close()

	router := content.NewRouter(cfg.Models)
	m := metrics.New()

	var events generator.EventPublisher
	if publisher != nil {
		events = publisher
	}
	svc := generator.NewService(router, gateway, m, events, logger)

	logger.Info("inference configured",
		zap.String("provider", svc.Provider()),
		zap.String("conversational_model", cfg.Models.Conversational),
		zap.String("instruct_model", cfg.Models.Instruct),
	)

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal("failed to parse page templates", zap.Error(err))
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Metrics(m))
	engine.SetHTMLTemplate(tmpl)

	// Swagger documentation
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	// Health check handlers
	checks := map[string]handlers.Checker{"inference": nil, "nats": nil}
	if c, ok := gateway.(inference.Checker); ok {
		checks["inference"] = c
	}
	if publisher != nil {
		checks["nats"] = handlers.CheckFunc(func(context.Context) error { return publisher.Healthy() })
	}
	healthHandler := handlers.NewHealthHandler(checks)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/health/deep", healthHandler.DeepHealth)

	pageHandler := handlers.NewPageHandler(svc, logger)
	engine.GET("/", pageHandler.Index)
	engine.POST("/", pageHandler.Submit)

	generationHandler := handlers.NewGenerationHandler(svc, logger)

	// API v1 routes
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/generate", generationHandler.Generate)
		v1.GET("/content-types", generationHandler.ListContentTypes)
		v1.GET("/settings", generationHandler.GetSettings)
	}

	engine.NoRoute(func(c *gin.Context) {
		middleware.NotFound(c, "route not found: "+c.Request.URL.Path)
	})

	// Create HTTP server. WriteTimeout covers the inference call, which has no timeout of its own.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
