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
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const shutdownGrace = 10 * time.Second

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

	// Set gin mode
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	hub := kds.NewHub()
	r := router.SetupRouter(db, cfg, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		utils.InfoLogger.WithField("driver", cfg.DBDriver).Infof("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Info("Server exited")
}
