package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	notificationservice "taskforge/contexts/engagement/notification-service"
	notifmemory "taskforge/contexts/engagement/notification-service/adapters/memory"
	notifpostgres "taskforge/contexts/engagement/notification-service/adapters/postgres"
	authorization "taskforge/contexts/identity-access/authorization-service"
	sessionservice "taskforge/contexts/identity-access/session-service"
	sessioncrypto "taskforge/contexts/identity-access/session-service/adapters/crypto"
	sessionpostgres "taskforge/contexts/identity-access/session-service/adapters/postgres"
	tokenservice "taskforge/contexts/identity-access/token-service"
	tokenpostgres "taskforge/contexts/identity-access/token-service/adapters/postgres"
	tokenworkers "taskforge/contexts/identity-access/token-service/application/workers"
	taskservice "taskforge/contexts/work-tracking/task-service"
	taskpostgres "taskforge/contexts/work-tracking/task-service/adapters/postgres"
	workspaceservice "taskforge/contexts/work-tracking/workspace-service"
	workspacepostgres "taskforge/contexts/work-tracking/workspace-service/adapters/postgres"
	"taskforge/internal/platform/config"
	"taskforge/internal/platform/db"
	"taskforge/internal/platform/httpserver"
	"taskforge/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	sweeper       tokenworkers.RefreshTokenSweeper
	sweepInterval time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.PostgresDSN); err != nil {
			return nil, err
		}
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	tokenRepo := tokenpostgres.NewRepository(pg.DB, logger)
	tokenModule := tokenservice.NewModule(tokenservice.Dependencies{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Tokens:     tokenRepo,
		Clock:      tokenpostgres.SystemClock{},
		Logger:     logger,
	})

	sessionRepo := sessionpostgres.NewRepository(pg.DB, logger)
	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Users:         sessionRepo,
		Organizations: sessionRepo,
		Hasher:        sessioncrypto.BcryptHasher{},
		Tokens:        tokenModule.Service,
		Clock:         sessionpostgres.SystemClock{},
		IDGenerator:   sessionpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	workspaceRepo := workspacepostgres.NewRepository(pg.DB, logger)
	workspaceModule := workspaceservice.NewModule(workspaceservice.Dependencies{
		Projects:      workspaceRepo,
		Organizations: sessionRepo,
		Users:         sessionRepo,
		Clock:         workspacepostgres.SystemClock{},
		IDGenerator:   workspacepostgres.UUIDGenerator{},
		Logger:        logger,
	})

	authzModule := authorization.NewModule(authorization.Dependencies{
		Decoder:  tokenModule.Service,
		Users:    sessionRepo,
		Projects: workspaceRepo,
		Logger:   logger,
	})

	notifRepo := notifpostgres.NewRepository(pg.DB, logger)
	notifModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notifRepo,
		Cache:         notifmemory.NewCache(),
		CacheTTL:      cfg.NotificationCacheTTL,
		Clock:         notifpostgres.SystemClock{},
		IDGenerator:   notifpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	taskModule := taskservice.NewModule(taskservice.Dependencies{
		Tasks:       taskpostgres.NewRepository(pg.DB, logger),
		Policy:      authzModule.Service,
		Members:     workspaceRepo,
		Notifier:    notifModule.Service,
		Clock:       taskpostgres.SystemClock{},
		IDGenerator: taskpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	server := httpserver.New(httpserver.Options{
		Tokens:            tokenModule,
		Sessions:          sessionModule,
		Authorization:     authzModule,
		Workspace:         workspaceModule,
		Tasks:             taskModule,
		Notifications:     notifModule,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		AuthRateBurst:     cfg.AuthRateBurst,
		Collector:         collector,
		MetricsRoute:      metrics.Handler(registry),
		Logger:            logger,
		Addr:              normalizeAddr(cfg.HTTPPort),
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		sweeper: tokenworkers.RefreshTokenSweeper{
			Tokens: tokenpostgres.NewRepository(pg.DB, logger),
			Clock:  tokenpostgres.SystemClock{},
			Logger: logger,
		},
		sweepInterval: cfg.SweepInterval,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sweep_interval", w.sweepInterval.String(),
	)

	for {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
