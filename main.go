package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/odhiambo-ed/ReUbuntu/controllers"
	"github.com/odhiambo-ed/ReUbuntu/database"
	"github.com/odhiambo-ed/ReUbuntu/middleware"
	"github.com/odhiambo-ed/ReUbuntu/realtime"
	"github.com/odhiambo-ed/ReUbuntu/repository"
	"github.com/odhiambo-ed/ReUbuntu/routes"
	servicepkg "github.com/odhiambo-ed/ReUbuntu/services"
	"github.com/odhiambo-ed/ReUbuntu/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	rdb := database.NewRedisClient(cfg.RedisURL)
	defer rdb.Close() //nolint:errcheck

	awsCfg, err := storage.LoadAWSConfig(context.Background())
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}
	blobs := storage.NewS3BlobStore(awsCfg, cfg.UploadsBucket)

	// DI chain
	uploadRepo := repository.NewGormUploadRepository(database.DB)
	inventoryRepo := repository.NewGormInventoryRepository(database.DB)
	pricingRepo := repository.NewGormPricingRepository(database.DB)
	publisher := realtime.NewRedisPublisher(rdb, logger)

	ingestionService := servicepkg.NewIngestionService(uploadRepo, inventoryRepo, blobs, publisher, logger)
	pricingService := servicepkg.NewPricingService(pricingRepo)

	uploadController := controllers.NewUploadController(ingestionService, rdb, logger)
	pricingController := controllers.NewPricingController(pricingService, logger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.EnableWorker {
		servicepkg.StartIngestionWorker(workerCtx, rdb, ingestionService, logger)
	}

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Duration("duration", duration),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ingestion-service"})
	})

	routes.Register(r, uploadController, pricingController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Ingestion service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down ingestion service...")

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
