package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atedres/boldnet-sub000/internal/app"
	identityapp "github.com/atedres/boldnet-sub000/internal/application/identity"
	mediaapp "github.com/atedres/boldnet-sub000/internal/application/media"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/auth"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/genai"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/logger"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/realtime"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/storage"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/handler"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/middleware"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/router"
	"github.com/atedres/boldnet-sub000/internal/interfaces/web"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting site server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Telemetry; both providers are no-ops when disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()
	contentMetrics, err := telemetry.NewContentMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to register content metrics", zap.Error(err))
	}

	// Database with a zap-backed GORM logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithSQL(cfg.Telemetry.DBLogFullSQL),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" {
		// sqlite is the local mode; postgres schemas come from cmd/migrate
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate sqlite database", zap.Error(err))
		}
	}
	if cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, cfg.Database.Driver, log).Register(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Live updates and token revocation share Redis when it is configured
	notifier := realtime.NewNotifier(ctx, cfg.Realtime, cfg.Redis, log)
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Error("Error closing live update notifier", zap.Error(err))
		}
	}()
	revocations, closeRevocations := newRevocationList(ctx, cfg, log)
	defer closeRevocations()

	mediaService := newMediaService(ctx, cfg, contentMetrics, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	services := app.NewServices(persistence.NewRepositories(db.DB), app.Deps{
		Publisher:   notifier,
		Metrics:     contentMetrics,
		JWT:         jwtService,
		Revocations: revocations,
		Auth: identityapp.AuthServiceConfig{
			InviteCode:       cfg.Auth.InviteCode,
			MaxLoginAttempts: cfg.Auth.MaxFailedLogins,
			LockDuration:     cfg.Auth.LockDuration,
		},
		Media:  mediaService,
		Logger: log,
	})

	liveHandler := handler.NewLiveHandler(notifier,
		handler.WithSSELogger(log),
		handler.WithSSEHeartbeat(cfg.HTTP.LiveHeartbeatPeriod),
		handler.WithSSEMaxClients(cfg.HTTP.LiveMaxClients),
		handler.WithSSEMetrics(contentMetrics),
	)
	if err := liveHandler.Start(); err != nil {
		log.Fatal("Failed to start live update handler", zap.Error(err))
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	handlers := app.NewAPIHandlers(services, systemHandler, liveHandler)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	imageUploadPath := "/api/v1" + "/media/images"

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span per route, then request attributes
	// 4. Logger - Log requests
	// 5. Metrics - Request counts and latency
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size; uploads carry their own limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector(), middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log, "/api/v1/system/ping", "/api/v1/live"))
	engine.Use(middleware.HTTPMetrics(meterProvider))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, imageUploadPath))

	// Per-group middleware
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:  jwtService,
		Revocations: revocations,
		Logger:      log,
	}
	liveJWTConfig := jwtConfig
	liveJWTConfig.AllowQueryToken = true

	mw := router.APIMiddleware{
		Auth:     middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		LiveAuth: middleware.JWTAuthMiddlewareWithConfig(liveJWTConfig),
	}
	if handlers.Media != nil {
		mw.UploadLimit = middleware.BodyLimit(handlers.Media.BodyLimit())
	}
	if cfg.HTTP.RateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		formLimiter := middleware.NewRateLimiter(ctx, cfg.HTTP.PublicFormRequests, cfg.HTTP.PublicFormWindow)
		mw.AuthLimit = middleware.ScopedRateLimit(authLimiter, "auth")
		mw.FormLimit = middleware.ScopedRateLimit(formLimiter, "form")
		log.Info("Rate limiting enabled",
			zap.Int("auth_requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("auth_window", cfg.HTTP.RateLimitWindow),
			zap.Int("form_requests", cfg.HTTP.PublicFormRequests),
			zap.Duration("form_window", cfg.HTTP.PublicFormWindow),
		)
	}

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, group := range router.APIGroups(handlers, mw) {
		r.Register(group)
	}
	r.Setup()

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Public site
	renderer, err := web.NewRenderer(log)
	if err != nil {
		log.Fatal("Failed to load site templates", zap.Error(err))
	}
	web.NewSite(services.WebContent(), renderer, log).Register(engine)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

	// live streams never finish on their own; end them before draining
	liveHandler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newRevocationList uses Redis when it answers and an in-memory list otherwise
func newRevocationList(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.RevocationList, func()) {
	if cfg.Realtime.Driver != realtime.DriverRedis {
		return auth.NewInMemoryRevocationList(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, revoked tokens are kept in memory", zap.Error(err))
		_ = client.Close()
		return auth.NewInMemoryRevocationList(), func() {}
	}
	return auth.NewRedisRevocationList(client), func() {
		if err := client.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}
}

// newMediaService builds the image store and the optional icon generator
func newMediaService(ctx context.Context, cfg *config.Config, metrics *telemetry.ContentMetrics, log *zap.Logger) *mediaapp.MediaService {
	var store mediaapp.ImageStore
	switch cfg.Storage.Driver {
	case "s3":
		s3Store, err := storage.NewS3ImageStore(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		store = s3Store
	default:
		log.Warn("Using the in-memory image store; uploads are lost on restart")
		store = storage.NewStubImageStore(cfg.Storage.PublicBaseURL)
	}

	var icons mediaapp.IconGenerator
	generator, err := genai.NewIconGenerator(ctx, cfg.GenAI, log)
	switch {
	case err == nil:
		icons = generator
	case errors.Is(err, genai.ErrDisabled):
		log.Info("Icon generation disabled")
	default:
		log.Warn("Icon generation unavailable", zap.Error(err))
	}

	return mediaapp.NewMediaService(
		store,
		storage.NewImageOptimizer(cfg.Storage.MaxImageWidth, cfg.Storage.JPEGQuality),
		icons,
		int(cfg.Storage.MaxUploadBytes),
		metrics,
		log,
	)
}
