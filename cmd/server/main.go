package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/catalog"
	appidentity "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/identity"
	apporder "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/refdata"
	appreport "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/auth"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/backend"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/cache"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/config"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/export"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/persistence"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/storage"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/telemetry"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/handler"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/middleware"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			IC Orders API
//	@version		1.0
//	@description	Order entry, master data and report export for the garment order-management backend
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}". The session cookie is accepted as well.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	log, logCloser := logger.New(logCfg)
	defer func() {
		_ = log.Sync()
		_ = logCloser.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if cfg.Telemetry.LogsEnabled {
		otelCore := providers.ZapCore(logger.ParseLevel(cfg.Log.Level))
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	log.Info("Starting IC Orders service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics := telemetry.NewMetrics()

	// Backend
	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Tracing: cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal("Invalid backend configuration", zap.Error(err))
	}

	// Sessions
	store, err := cache.NewSessionStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()

	tokens, err := auth.NewJWTService(cfg.Session)
	if err != nil {
		log.Fatal("Failed to initialize session tokens", zap.Error(err))
	}
	if cfg.Session.Secret == "" {
		log.Warn("No session secret configured; sessions will not survive a restart")
	}

	// Reference data caches
	registry := refdata.NewRegistry(refdata.Options{
		StaleAfter:   cfg.Cache.StaleAfter,
		FetchTimeout: cfg.Cache.FetchTimeout,
	}, metrics, log)
	defer registry.Close()
	go registry.Run(ctx, cfg.Cache.SweepInterval, cfg.Cache.IdleEviction)

	// Export history
	db, err := persistence.NewDatabase(cfg.Database,
		logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database ready", zap.String("driver", db.Driver()))

	// Export rendering and archive
	var pdf export.PDFRenderer
	if cfg.Export.PDFEnabled {
		pdf = export.NewChromedpRenderer(export.ChromedpConfig{
			Timeout:  cfg.Export.PDFTimeout,
			ExecPath: cfg.Export.ChromePath,
			Logger:   log,
		})
	}
	exporter := export.NewExporter(pdf)
	defer func() {
		if err := exporter.Close(); err != nil {
			log.Error("Error closing exporter", zap.Error(err))
		}
	}()

	reportOpts := []appreport.ServiceOption{appreport.WithObserver(metrics)}
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3Archive(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize export archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare export bucket", zap.Error(err))
		}
		reportOpts = append(reportOpts, appreport.WithArchive(archive))
		log.Info("Export archive enabled", zap.String("bucket", archive.Bucket()))
	}

	// Application services
	authService := appidentity.NewAuthService(client, store, tokens, registry, appidentity.AuthServiceConfig{
		SessionTTL: cfg.Session.TTL,
	}, log)
	catalogConnect := func(token string) catalog.Backend { return client.As(token) }
	refresher := catalog.NewRefresher(registry, log)
	orderService := apporder.NewService(func(token string) apporder.Backend { return client.As(token) }, log)
	reportService := appreport.NewService(
		func(token string) appreport.Backend { return client.As(token) },
		exporter,
		persistence.NewGormExportRecordRepository(db.DB),
		appreport.ServiceConfig{MaxRows: cfg.Export.MaxRows},
		log,
		reportOpts...,
	)

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Domain: cfg.Session.CookieDomain,
			Secure: cfg.Session.CookieSecure,
		}),
		Reference: handler.NewReferenceHandler(registry, func(token string) refdata.Source { return client.As(token) }),
		Party:     handler.NewPartyHandler(catalog.NewPartyService(catalogConnect, refresher, log)),
		Design:    handler.NewDesignHandler(catalog.NewDesignService(catalogConnect, refresher, log)),
		Transport: handler.NewTransportHandler(catalog.NewTransportService(catalogConnect, refresher, log)),
		Order:     handler.NewOrderHandler(orderService),
		Report:    handler.NewReportHandler(reportService),
		System: handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.HealthCheck{
			"database": db.Ping,
		}),
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitBurst)
		go limiter.Run(ctx, 10*time.Minute)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction() && cfg.Session.CookieSecure

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		Session: middleware.SessionConfig{
			Resolver:   authService,
			CookieName: cfg.Session.CookieName,
			Logger:     log,
		},
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		CORS:           corsCfg,
		Security:       securityCfg,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimiter:    limiter,
		Metrics:        metrics,
		MetricsHandler: metrics.Handler(),
		MetricsPath:    cfg.Telemetry.MetricsPath,
	}, handlers)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := refresher.Drain(shutdownCtx); err != nil {
		log.Warn("Reference refreshes still running at shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
