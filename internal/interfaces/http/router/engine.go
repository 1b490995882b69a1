package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/middleware"
)

// EngineConfig configures the global middleware of the HTTP engine
type EngineConfig struct {
	Logger         *zap.Logger
	Session        middleware.SessionConfig
	Tracing        middleware.TracingConfig
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string

	// RateLimiter is nil when rate limiting is disabled
	RateLimiter *middleware.RateLimiter

	Metrics        middleware.HTTPObserver
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewEngine builds the gin engine with the global middleware chain and every
// API route registered under /api/v1
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.RequestAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(cfg.Logger, "/health", cfg.MetricsPath))
	engine.Use(middleware.HTTPMetrics(cfg.Metrics))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	engine.GET("/health", h.System.Health)
	if cfg.MetricsHandler != nil && cfg.MetricsPath != "" {
		engine.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsHandler))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(APIGroups(h,
		middleware.SessionAuth(cfg.Session),
		middleware.SessionAttributes(),
	)...)
	r.Setup()

	return engine, nil
}
