package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"WatchWorks/internal/catalog"
	"WatchWorks/internal/config"
	"WatchWorks/internal/ledger"
	"WatchWorks/internal/notify"
	"WatchWorks/internal/payment"
	"WatchWorks/internal/storefront"
	"WatchWorks/pkg/kit"
)

const service = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, false).Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogDev)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage init", zap.Error(err))
	}

	cat := catalog.NewStore(catalog.DefaultProducts())
	led := ledger.New(ctx, store, log, notify.NewLog(log))
	provider := &payment.Simulated{Delay: cfg.Payment.Delay, Decline: cfg.Payment.Decline}

	registry := prometheus.NewRegistry()
	h := storefront.NewHandler(
		storefront.Deps{
			Catalog:  cat,
			Ledger:   led,
			Store:    store,
			Payments: provider,
		},
		storefront.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       registry,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsToken:   cfg.Metrics.Token,
			RateLimit:      cfg.Rate.Limit,
			RateWindow:     cfg.Rate.Window,
		},
	)

	log.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (ledger.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return ledger.NewMemStore(), nil

	case "postgres":
		db, err := sql.Open("pgx", cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store := ledger.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		return ledger.NewRedisStore(client, log), nil

	default:
		return ledger.NewFileStore(cfg.Storage.StatePath, log), nil
	}
}
