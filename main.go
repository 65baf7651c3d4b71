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

	"luxreplica-backend/config"
	"luxreplica-backend/database"
	"luxreplica-backend/logger"
	"luxreplica-backend/middleware"
	"luxreplica-backend/routes"
	"luxreplica-backend/storage"
	"luxreplica-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	zlog, err := logger.Init(cfg.Logger.Mode, cfg.Logger.Filename)
	if err != nil {
		log.Fatal("Failed to initialise logger: ", err)
	}
	defer zlog.Sync()

	// Validate critical environment variables
	if err := config.ValidateEnv(cfg); err != nil {
		zap.S().Fatalf("Environment validation failed: %v", err)
	}

	utils.RegisterJSONFieldNames()

	store, db, err := openStore(cfg)
	if err != nil {
		zap.S().Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}

	if cfg.SeedCatalog {
		if err := database.SeedCatalog(context.Background(), store); err != nil {
			zap.S().Fatalf("Failed to seed catalog: %v", err)
		}
	}

	if cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	limiter := routes.SetupRoutes(r, store, cfg)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.S().Infof("Server starting on port %s (%s store)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorf("Server forced to shutdown: %v", err)
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				zap.S().Errorf("Error closing database connection: %v", err)
			} else {
				zap.S().Info("Database connection closed")
			}
		}
	}

	zap.S().Info("Server exited gracefully")
}

// openStore builds the configured store. db is nil for the memory driver.
func openStore(cfg config.Config) (storage.Storage, *gorm.DB, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return storage.NewMemStorage(), nil, nil
	}

	db, err := database.Connect(cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	return storage.NewGormStorage(db), db, nil
}
