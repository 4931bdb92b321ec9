// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/ittools/internal/admin"
	"github.com/carterperez-dev/ittools/internal/auth"
	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/config"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/favorite"
	"github.com/carterperez-dev/ittools/internal/health"
	"github.com/carterperez-dev/ittools/internal/middleware"
	"github.com/carterperez-dev/ittools/internal/routes"
	"github.com/carterperez-dev/ittools/internal/server"
	"github.com/carterperez-dev/ittools/internal/toolkit"
	"github.com/carterperez-dev/ittools/internal/upgrade"
	"github.com/carterperez-dev/ittools/internal/user"
)

const (
	drainDelay = 5 * time.Second

	catalogChannel = "ittools:catalog:changed"
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
	defer db.Close() //nolint:errcheck // process is exiting
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		version, migErr := core.Migrate(db.DB.DB)
		if migErr != nil {
			return migErr
		}
		logger.Info("database migrated", "version", version)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redis.Close() //nolint:errcheck // process is exiting
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	hasher := core.NewPasswordHasher(core.Argon2Params{
		Memory:  cfg.Password.MemoryKiB,
		Time:    cfg.Password.Iterations,
		Threads: cfg.Password.Parallelism,
		KeyLen:  core.DefaultArgon2Params.KeyLen,
	})

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	if err := bootstrapAdmin(ctx, cfg.Admin, userSvc, hasher, logger); err != nil {
		return err
	}

	authSvc := auth.NewService(jwtManager, userSvc, hasher)
	authHandler := auth.NewHandler(authSvc)

	manifest := toolkit.Default()

	catalogSvc := catalog.NewService(catalog.NewRepository(db.DB), manifest)
	catalogHandler := catalog.NewHandler(catalogSvc)

	composer := routes.NewComposer(catalogSvc, manifest, logger)
	if err := composer.Refresh(ctx); err != nil {
		logger.Error("initial route composition failed", "error", err)
	}

	missing, err := composer.ValidateManifest(ctx)
	switch {
	case err != nil:
		logger.Warn("manifest validation skipped", "error", err)
	case len(missing) > 0 && cfg.Tools.StrictManifest:
		return fmt.Errorf("active tools without widgets: %s", strings.Join(missing, ", "))
	case len(missing) > 0:
		logger.Warn("active tools without widgets", "tools", missing)
	}

	catalogSvc.OnChange(composer.ChangeHook(func(ctx context.Context) error {
		return redis.Notify(ctx, catalogChannel)
	}))
	if err := redis.Listen(ctx, catalogChannel, func(ctx context.Context) {
		_ = composer.Refresh(ctx) //nolint:errcheck // logged in Refresh
	}); err != nil {
		logger.Warn("catalog change listener not started", "error", err)
	}

	if spec := cfg.Tools.RefreshSchedule; spec != "" {
		stopRefresh, schedErr := composer.Schedule(ctx, spec)
		if schedErr != nil {
			return schedErr
		}
		defer stopRefresh()
	}

	routesHandler := routes.NewHandler(composer)

	favoriteSvc := favorite.NewService(favorite.NewRepository(db.DB))
	favoriteHandler := favorite.NewHandler(favoriteSvc)

	upgradeSvc := upgrade.NewService(upgrade.NewRepository(db.DB), userSvc)
	upgradeHandler := upgrade.NewHandler(upgradeSvc)

	healthHandler := health.NewHandler(
		health.Check{Name: "database", Checker: db},
		health.Check{Name: "redis", Checker: redis},
		health.Check{Name: "routes", Checker: health.CheckFunc(func(context.Context) error {
			if composer.Table().Len() == 0 {
				return errors.New("no routes composed")
			}
			return nil
		})},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Users:      userSvc,
		Catalog:    catalogSvc,
		Upgrades:   upgradeSvc,
		UnavailableTools: func() []string {
			var names []string
			for _, r := range composer.Table().Unavailable() {
				names = append(names, r.Name)
			}
			return names
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
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

	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())

	viewers := middleware.ResolveViewer(userSvc)
	authenticated := middleware.Chain(middleware.Authenticator(jwtManager), viewers)
	optionalViewer := middleware.Chain(middleware.OptionalAuth(jwtManager), viewers)
	adminOnly := middleware.RequireAdmin
	runLimiter := middleware.TieredRateLimiter(
		redis.Client,
		middleware.TiersFromConfig(
			cfg.RateLimit.FreeRunsPerMinute,
			cfg.RateLimit.PremiumRunsPerMinute,
		),
	)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)

		userHandler.RegisterRoutes(r, authenticated)
		userHandler.RegisterAdminRoutes(r, authenticated, adminOnly)

		catalogHandler.RegisterRoutes(r)
		catalogHandler.RegisterAdminRoutes(r, authenticated, adminOnly)

		routesHandler.RegisterRoutes(r, optionalViewer, runLimiter)

		favoriteHandler.RegisterRoutes(r, authenticated)

		upgradeHandler.RegisterRoutes(r, authenticated)
		upgradeHandler.RegisterAdminRoutes(r, authenticated, adminOnly)

		adminHandler.RegisterRoutes(r, authenticated, adminOnly)
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

	logger.Info("application stopped")
	return nil
}

// bootstrapAdmin makes sure the configured admin account exists. Nothing
// happens when no admin is configured.
func bootstrapAdmin(
	ctx context.Context,
	cfg config.AdminConfig,
	users *user.Service,
	hasher *core.PasswordHasher,
	logger *slog.Logger,
) error {
	if cfg.Username == "" {
		return nil
	}

	hash, err := hasher.Hash(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	account, created, err := users.EnsureAdmin(ctx, cfg.Username, hash)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	logger.Info("admin account ready",
		"username", account.Username,
		"created", created,
	)
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
