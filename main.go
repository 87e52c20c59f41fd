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
	"go.uber.org/zap"

	"gatag/api/config"
	"gatag/api/database"
	"gatag/api/handlers"
	"gatag/api/logging"
	"gatag/api/store"
	"gatag/api/utils"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Release())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Info("No .env file found, using process environment")
	}
	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL (users, tracking profiles) ---
	dbClient, err := database.NewPostgresDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize PostgreSQL database", zap.Error(err))
	}
	defer dbClient.Close()

	// --- ClickHouse (snippet render events) ---
	chClient, err := database.NewClickHouseDB(cfg.ClickHouse, logger)
	if err != nil {
		logger.Fatal("Failed to initialize ClickHouse database", zap.Error(err))
	}
	defer chClient.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.MigratePostgres(migrateCtx, dbClient.DB); err != nil {
		logger.Fatal("PostgreSQL migration failed", zap.Error(err))
	}
	if err := database.MigrateClickHouse(migrateCtx, chClient.Conn); err != nil {
		logger.Fatal("ClickHouse migration failed", zap.Error(err))
	}
	cancelMigrate()

	renderStore := store.NewRenderStore(chClient, logger)
	r := handlers.NewRouter(handlers.RouterDeps{
		Users:          store.NewUserStore(dbClient.DB, logger),
		Profiles:       store.NewProfileStore(dbClient.DB, logger),
		Renders:        renderStore,
		Stats:          renderStore,
		Tokens:         utils.NewTokenManager(cfg.JWTSecret, tokenTTL),
		APIKey:         cfg.AuthDefaultKey,
		FrontendOrigin: cfg.FrontendOrigin,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Snippet API starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Snippet API failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
