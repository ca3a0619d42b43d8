package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/clinic-services/internal/api/http"
	"github.com/spec-kit/clinic-services/internal/api/http/handlers"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/config"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/observability"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/persistence"
	"github.com/spec-kit/clinic-services/internal/service"
	"github.com/spec-kit/clinic-services/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Deps are the shared collaborators every service is built from.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Pool       *pgxpool.Pool
	Metrics    *observability.Metrics
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Validator  *peer.Validator
}

// WireFunc builds the service-specific handlers.
type WireFunc func(Deps) httptransport.RouteConfig

// Run starts the named service and blocks until SIGINT or SIGTERM.
func Run(serviceName string, wire WireFunc) {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger := observability.ForService(baseLogger, cfg.App)
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, serviceName, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis, err := persistence.NewRedis(ctx, serviceName, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable; events stay local until it recovers", zap.Error(err))
	}
	defer redis.Close()

	metrics := observability.NewMetrics()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(
		service.NewNotificationService(dispatcher, logger),
		dispatcher,
		events.NewRedisRelay(redis.Client, cfg.Events.Channel),
	)

	validator := peer.NewValidator(peer.Endpoints{
		UserServiceURL:   cfg.Peers.UserServiceURL,
		DoctorServiceURL: cfg.Peers.DoctorServiceURL,
	}, cfg.Peers.Timeout(), logger, metrics)

	routes := wire(Deps{
		Config:     cfg,
		Logger:     logger,
		Pool:       pg.PoolHandle(),
		Metrics:    metrics,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Validator:  validator,
	})
	routes.Health = handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
		"postgres": pg,
		"redis":    redis,
	}, metrics)

	app := httptransport.NewApp(cfg.App.Name, logger, metrics)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:           logger,
		Metrics:          metrics,
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
		Auth:             auth.NewAuthMiddleware(tokens, logger, metrics),
	})
	httptransport.RegisterRoutes(app, routes)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
