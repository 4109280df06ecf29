// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/compass/internal/admin"
	"github.com/angelamos/compass/internal/assessment"
	"github.com/angelamos/compass/internal/auth"
	"github.com/angelamos/compass/internal/config"
	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/goal"
	"github.com/angelamos/compass/internal/health"
	"github.com/angelamos/compass/internal/middleware"
	"github.com/angelamos/compass/internal/nudge"
	"github.com/angelamos/compass/internal/profile"
	"github.com/angelamos/compass/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}
	logger.Info("token verifier initialized",
		"issuer", cfg.Auth.Issuer,
		"audience", cfg.Auth.Audience,
	)

	// Validated at config load, so this cannot fail here.
	defaultLoc, err := time.LoadLocation(cfg.App.DefaultTimezone)
	if err != nil {
		return err
	}

	profileRepo := profile.NewRepository(db.DB)
	profileSvc := profile.NewService(
		profileRepo,
		defaultLoc,
		cfg.Trial.LengthDays,
	)
	profileHandler := profile.NewHandler(profileSvc)

	goalRepo := goal.NewRepository(db.DB)
	goalSvc := goal.NewService(goalRepo, profileSvc)
	goalHandler := goal.NewHandler(goalSvc)

	assessmentRepo := assessment.NewRepository(db.DB)
	assessmentSvc := assessment.NewService(assessmentRepo, profileSvc, goalSvc)
	assessmentHandler := assessment.NewHandler(assessmentSvc)

	nudgeLimiter := nudge.NewLimiter(
		nudge.NewRedisStore(redis.Client, cfg.Nudge.CounterTTL),
		nudge.NewLocalStore(),
	)
	nudgeSvc := nudge.NewService(nudgeLimiter, goalSvc, profileSvc, defaultLoc)
	nudgeHandler := nudge.NewHandler(nudgeSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(verifier)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		profileHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterBillingRoutes(r, authenticator, adminOnly)

		goalHandler.RegisterRoutes(r, authenticator)
		assessmentHandler.RegisterRoutes(r, authenticator)
		nudgeHandler.RegisterRoutes(r, authenticator)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
