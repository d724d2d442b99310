package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"railchat/internal/config"
	"railchat/internal/handler"
	"railchat/internal/logger"
	"railchat/internal/repository"
	"railchat/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("railchat server")

	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, login and tickets are disabled")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewRepository(
		cfg.Database.Driver,
		cfg.GetDSN(),
		cfg.Database.MaxConnections,
		cfg.Database.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.WithField("driver", repo.Driver()).Info("connected to catalog store")

	// Catalog reads go through the LRU cache unless disabled
	var catalog service.CatalogStore = repo
	if cfg.Cache.Size > 0 {
		catalog = repository.NewCachedCatalog(repo, cfg.Cache.Size, cfg.Cache.TTL)
		log.WithFields(logrus.Fields{
			"size": cfg.Cache.Size,
			"ttl":  cfg.Cache.TTL,
		}).Info("catalog cache enabled")
	}

	// Initialize services
	assistant := service.NewAssistant(catalog, cfg.NLU, cfg.Database.QueryTimeout, log)
	auth := service.NewAuthService(repo, cfg.Auth, log)

	// Warm the station catalog so the first chat request does not pay for it
	log.WithField("station_count", len(assistant.Stations(context.Background()))).Debug("station catalog warmed")

	router := handler.NewRouter(handler.RouterConfig{
		Assistant:        assistant,
		Auth:             auth,
		Log:              log,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		MaxMessageLength: cfg.Server.MaxMessageLength,
		Build: handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
