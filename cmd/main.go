package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-import-service/internal/clients"
	"catalog-import-service/internal/config"
	"catalog-import-service/internal/events"
	"catalog-import-service/internal/handlers"
	"catalog-import-service/internal/importer"
	"catalog-import-service/internal/middleware"
	"catalog-import-service/internal/repository"
)

// @title Catalog Import API
// @version 1.0.0
// @description Bulk product import, preview and export against the catalog service

// @host localhost:8093
// @BasePath /api/v1

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	jobsRepo := repository.NewJobsRepository(db)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warnf("Failed to parse Redis URL: %v (falling back to localhost)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warnf("Failed to connect to Redis: %v (upload tokens will be unavailable)", err)
	} else {
		logger.Info("✓ Redis connected successfully")
	}
	cancel()
	uploadStore := repository.NewUploadStore(redisClient, cfg.UploadTTL)

	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			logger.Warnf("Failed to initialize events publisher: %v (continuing without event publishing)", err)
			eventsPublisher = nil
		} else {
			logger.Info("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		logger.Info("NATS_URL not set, skipping event publishing initialization")
	}
	defer eventsPublisher.Close()

	catalogClient := clients.NewCatalogClient(clients.CatalogClientConfig{
		BaseURL:   cfg.CatalogServiceURL,
		Timeout:   cfg.CatalogTimeout,
		RateLimit: cfg.CatalogRateLimit,
		Burst:     5,
	}, logrus.NewEntry(logger))

	engine := importer.NewEngine(catalogClient, cfg.CatalogPageSize, logrus.NewEntry(logger))
	logger.Infof("✓ Catalog client configured for %s", cfg.CatalogServiceURL)

	opts := handlers.ImportHandlerOptions{
		Uploads:        uploadStore,
		Jobs:           jobsRepo,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logrus.NewEntry(logger),
	}
	if eventsPublisher != nil {
		opts.Publisher = eventsPublisher
	}
	importHandler := handlers.NewImportHandler(engine, opts)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadinessCheck(map[string]handlers.Pinger{
		"database": func(c *gin.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(c.Request.Context())
		},
		"redis": func(c *gin.Context) error {
			return redisClient.Ping(c.Request.Context()).Err()
		},
	}))

	api := router.Group("/api/v1")
	api.Use(middleware.DevelopmentAuthMiddleware())
	api.Use(middleware.TenantMiddleware())
	{
		products := api.Group("/products")
		{
			products.GET("/import/template", importHandler.GetImportTemplate)
			products.POST("/import/preview", importHandler.PreviewImport)
			products.POST("/import/commit", importHandler.CommitImport)
			products.POST("/export", importHandler.ExportProducts)
		}

		imports := api.Group("/imports")
		{
			imports.GET("", importHandler.ListImportJobs)
			imports.GET("/:id", importHandler.GetImportJob)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Catalog import service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	logger.Info("Shutting down catalog-import-service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Warnf("Error closing Redis: %v", err)
	}

	logger.Info("Catalog import service stopped")
}
