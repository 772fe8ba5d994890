package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	planningapp "github.com/alessandrv/FEC-mrp/internal/application/planning"
	watchlistapp "github.com/alessandrv/FEC-mrp/internal/application/watchlist"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/cache"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/config"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/logger"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/handler"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/middleware"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTel log bridge: once the provider exists, rebuild the logger so every
	// entry is also shipped to the collector
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize OTel logs", zap.Error(err))
	}
	log := bootLog
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, otelCore); err != nil {
			bootLog.Fatal("Failed to initialize logger", zap.Error(err))
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FEC MRP service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing and metrics
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Telemetry.SpanProfilesEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
	dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
	dbMetrics, err := telemetry.RegisterDBMetrics(ctx, db.DB, meterProvider, dbMetricsCfg, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	// Result cache
	resultCache, err := cache.NewResultCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
		cache.WithSweepInterval(cfg.Cache.SweepInterval),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create result cache", zap.Error(err))
	}

	// Repositories and services
	bomRepo := persistence.NewGormBOMRepository(db)
	articleRepo := persistence.NewGormArticleRepository(db)
	availabilityRepo := persistence.NewGormAvailabilityRepository(db)
	watchlistRepo := persistence.NewGormWatchlistRepository(db)

	simulationService := planningapp.NewSimulationService(bomRepo, articleRepo, availabilityRepo, resultCache, planningapp.SimulationOptions{
		Timeout:          cfg.Simulation.Timeout,
		Concurrency:      cfg.Simulation.BOMLookupConcurrency,
		LegacyNoneParent: cfg.Simulation.LegacyNoneParent,
		CacheTTL:         cfg.Cache.SimulationTTL,
	})
	articleService := planningapp.NewArticleService(articleRepo, availabilityRepo, resultCache, planningapp.ArticleCacheTTLs{
		Description:  cfg.Cache.DescriptionTTL,
		Availability: cfg.Cache.AvailabilityTTL,
	})
	watchlistService := watchlistapp.NewWatchlistService(watchlistRepo)

	if meterProvider.IsEnabled() {
		planningMetrics, err := telemetry.NewPlanningMetrics(meterProvider.Meter("planning"))
		if err != nil {
			log.Fatal("Failed to create planning metrics", zap.Error(err))
		}
		simulationService.SetMetrics(planningMetrics)
		articleService.SetMetrics(planningMetrics)
	}

	handlers := router.Handlers{
		Simulation: handler.NewSimulationHandler(simulationService),
		Article:    handler.NewArticleHandler(articleService),
		Watchlist:  handler.NewWatchlistHandler(watchlistService),
		System:     handler.NewSystemHandler(cfg.App.Name, version, db),
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id must exist before logging and tracing
	// read it, and Recovery must wrap everything that can panic.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
	}))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   profiler.IsEnabled(),
		SkipPaths: []string{"/health"},
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.RegisterAll(router.NewRouter(engine, router.WithAPIVersion("v1")), handlers).Setup()
	log.Info("Routes registered", zap.Int("count", len(engine.Routes())))

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
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Release in reverse order of acquisition
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if err := resultCache.Close(); err != nil {
		log.Error("Error closing result cache", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		bootLog.Error("Error shutting down logger provider", zap.Error(err))
	}
}
