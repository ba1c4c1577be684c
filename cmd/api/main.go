package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-gate/internal/api/http"
	"github.com/spec-kit/ticket-gate/internal/api/http/handlers"
	"github.com/spec-kit/ticket-gate/internal/audit"
	"github.com/spec-kit/ticket-gate/internal/auth"
	"github.com/spec-kit/ticket-gate/internal/config"
	"github.com/spec-kit/ticket-gate/internal/observability"
	"github.com/spec-kit/ticket-gate/internal/persistence"
	"github.com/spec-kit/ticket-gate/internal/service"
	"github.com/spec-kit/ticket-gate/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	recorder := audit.NewRecorder(logger,
		audit.NewCSVSink(cfg.Gate.AuditDir),
		audit.NewPostgresSink(pg.PoolHandle()),
		audit.NewRedisSink(redis.Client),
	)

	pipeline := validation.NewPipeline(validation.Dependencies{
		Timeout:  cfg.Gate.OutboundTimeout(),
		TowerIDs: cfg.Gate.TowerIDs,
		Logger:   logger,
	})

	gateService := service.NewGateService(service.GateDependencies{
		Pipeline: pipeline,
		Recorder: recorder,
		Gate:     cfg.Gate,
		Metrics:  metrics,
		Logger:   logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	apiKeys := auth.NewAPIKeyVerifier(cfg.Auth.APIKeyHash)
	authMiddleware := auth.NewAuthMiddleware(tokens, apiKeys)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(tokens, apiKeys),
		Validations:    handlers.NewValidationsHandler(gateService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
