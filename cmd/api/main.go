package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/config"
	dbpkg "github.com/BruksfildServices01/shala-api/internal/db"
	"github.com/BruksfildServices01/shala-api/internal/logger"
	"github.com/BruksfildServices01/shala-api/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(cfg.Env)
	defer func() { _ = zl.Sync() }()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	catalogCache := newCache(cfg, zl)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zl)
	defer auditDispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, zl, catalogCache, auditLogger, auditDispatcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

// newCache falls back to no caching when Redis is not configured or not
// reachable at startup.
func newCache(cfg *config.Config, zl *zap.Logger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.Noop{}
	}

	rc, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		zl.Warn("invalid REDIS_URL, catalog cache disabled", zap.Error(err))
		return cache.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		zl.Warn("redis unreachable, catalog cache disabled", zap.Error(err))
		_ = rc.Close()
		return cache.Noop{}
	}

	zl.Info("catalog cache enabled")
	return rc
}
