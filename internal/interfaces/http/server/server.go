// Package server assembles the gin engine and the http.Server for the watchlist API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	watchlistapp "github.com/watchlist/backend/internal/application/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/cache"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"github.com/watchlist/backend/internal/infrastructure/telemetry"
	"github.com/watchlist/backend/internal/interfaces/http/handler"
	"github.com/watchlist/backend/internal/interfaces/http/middleware"
	"github.com/watchlist/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// Deps are the collaborators the engine is built from
type Deps struct {
	Config         *config.Config
	Logger         *zap.Logger
	Service        *watchlistapp.Service
	Backend        handler.HealthChecker
	RateLimitStore cache.RateLimitStore // nil disables rate limiting
	MeterProvider  *telemetry.MeterProvider
	Version        string
}

// NewEngine builds the gin engine with the full middleware stack and all routes.
func NewEngine(deps Deps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	// Both "/api/movie" and "/api/movie/" are registered explicitly
	engine.RedirectTrailingSlash = false

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Server span per request (if enabled)
	// 5. Profiling - Route labels on CPU samples (if enabled)
	// 6. Metrics - Request count and latency (if enabled)
	// 7. Security - Add security headers
	// 8. CORS - Handle cross-origin requests
	// 9. BodyLimit - Limit request body size
	// 10. Timeout - Bound storage calls
	// 11. RateLimit - Watchlist routes only (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanEnricher())
	}
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.ProfilingLabels())
	}
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.MeterProvider,
		Logger:        log,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	var rateLimit gin.HandlerFunc
	if deps.RateLimitStore != nil {
		rateLimit = middleware.RateLimit(deps.RateLimitStore, log)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.String("store", cfg.HTTP.RateLimitStore),
		)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	movieHandler := handler.NewMovieHandler(deps.Service)
	systemHandler := handler.NewSystemHandler(deps.Backend, log, deps.Version)

	r := router.NewRouter(engine).
		Register(router.SystemRoutes(systemHandler)).
		Register(router.MovieRoutes(cfg.App.BasePath, movieHandler, rateLimit))
	if cfg.HTTP.SwaggerEnabled {
		r.Register(router.SwaggerRoutes())
	}
	r.Setup()

	return engine
}

// New wraps the engine in an http.Server configured from cfg
func New(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.App.ListenAddr(),
		Handler:           h,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}
}
