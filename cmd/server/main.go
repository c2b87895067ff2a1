package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hydroshare-viewer-service/internal/adapters/primary/http/handlers"
	"hydroshare-viewer-service/internal/adapters/primary/http/middleware"
	"hydroshare-viewer-service/internal/adapters/secondary/cache"
	"hydroshare-viewer-service/internal/app"
	"hydroshare-viewer-service/internal/config"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	shutdownTracing, err := observability.InitTracing(context.Background(), cfg.Tracing)
	if err != nil {
		log.Fatalf("init tracing: %v", err)
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(prometheus.DefaultRegisterer)
	}

	responseCache, closeCache := initCache(cfg)
	defer closeCache()

	for name, enabled := range map[string]bool{
		"geoserver":   cfg.GeoServerEnabled(),
		"hydroserver": cfg.HydroServerEnabled(),
		"hydroshare":  cfg.HydroShareEnabled(),
	} {
		if !enabled {
			log.Infof("%s integration disabled", name)
		}
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	svcs := app.New(cfg, responseCache, metrics)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(svcs.DataViewer, svcs.GISViewer, responseCache, handlers.Settings{
		GeoServerURL:   cfg.Upstream.GeoServerURL,
		HydroServerURL: cfg.Upstream.HydroServerURL,
		MaxLayers:      cfg.DataViewer.MaxLayers,
	})

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	h.RegisterRoutes(router.Group("/apps"))
	h.RegisterHealthRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: otelhttp.NewHandler(router, "hsviewer"),
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.WithError(err).Warn("tracing shutdown failed")
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// initCache selects the upstream response cache. A Redis cache that cannot
// be reached is logged and replaced by no cache.
func initCache(cfg *config.Config) (ports.ResponseCache, func()) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		log.Infof("in-memory response cache enabled (%d entries)", cfg.Cache.Size)
		return cache.NewMemoryCache(cfg.Cache.Size, clockwork.NewRealClock()), func() {}
	case config.CacheBackendRedis:
		rc, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Warnf("redis cache init failed (continuing without cache): %v", err)
			return nil, func() {}
		}
		log.Info("redis response cache enabled")
		return rc, func() {
			if err := rc.Close(); err != nil {
				log.WithError(err).Warn("redis close failed")
			}
		}
	default:
		log.Info("response cache disabled")
		return nil, func() {}
	}
}
