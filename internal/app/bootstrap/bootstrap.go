package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	registryservice "databazaar/contexts/marketplace/registry-service"
	boltadapter "databazaar/contexts/marketplace/registry-service/adapters/bolt"
	postgresadapter "databazaar/contexts/marketplace/registry-service/adapters/postgres"
	"databazaar/contexts/marketplace/registry-service/application"
	"databazaar/contexts/marketplace/registry-service/ports"
	"databazaar/internal/platform/config"
	"databazaar/internal/platform/db"
	"databazaar/internal/platform/httpserver"
	"databazaar/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	bolt     *db.Bolt
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	bus := messaging.NewBus(logger)
	startAuditFeed(context.Background(), bus, logger)

	app := &APIApp{logger: logger}
	module, err := buildRegistryModule(cfg, app, bus, logger)
	if err != nil {
		return nil, err
	}

	app.server = httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

// startAuditFeed logs every change-feed event. The bus drops events for slow
// subscribers, so a stalled log sink never backs up into request handling.
func startAuditFeed(ctx context.Context, bus *messaging.Bus, logger *slog.Logger) {
	log := func(_ context.Context, event ports.EventEnvelope) error {
		logger.Info("registry change",
			"event", "registry_audit",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"actor", event.Actor,
		)
		return nil
	}
	for _, topic := range []string{application.TopicDataItems, application.TopicPurchasers} {
		_ = bus.Subscribe(ctx, topic, log)
	}
}

func buildRegistryModule(cfg config.Config, app *APIApp, bus *messaging.Bus, logger *slog.Logger) (registryservice.Module, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return registryservice.Module{}, errors.New("POSTGRES_DSN is required when STORAGE_DRIVER=postgres")
		}
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return registryservice.Module{}, err
		}
		app.postgres = pg

		repo := postgresadapter.NewRepository(pg.DB, logger)
		if err := repo.AutoMigrate(); err != nil {
			return registryservice.Module{}, err
		}
		return registryservice.NewModule(registryservice.Dependencies{
			Items:      repo,
			Purchasers: repo,
			Clock:      postgresadapter.SystemClock{},
			IDs:        postgresadapter.UUIDGenerator{},
			Events:     bus,
			Logger:     logger,
		}), nil

	case config.StorageDriverBolt:
		handle, err := db.OpenBolt(cfg.BoltPath)
		if err != nil {
			return registryservice.Module{}, err
		}
		app.bolt = handle

		store, err := boltadapter.NewStore(handle.DB)
		if err != nil {
			return registryservice.Module{}, err
		}
		return registryservice.NewModule(registryservice.Dependencies{
			Items:      store,
			Purchasers: store,
			Clock:      boltadapter.SystemClock{},
			IDs:        boltadapter.UUIDGenerator{},
			Events:     bus,
			Logger:     logger,
		}), nil

	default:
		return registryservice.Module{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	if a.bolt != nil {
		return a.bolt.Close()
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
