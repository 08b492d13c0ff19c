package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/rediscache"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/sqlstore"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/infra/relay"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
	"github.com/redis/go-redis/v9"
)

type readinessCheck func(ctx context.Context) error

// catalogBackend is the repository chosen by config plus whatever has to be
// pinged for readiness and closed on shutdown.
type catalogBackend struct {
	repo   catalogapp.Repo
	checks []readinessCheck
	closes []func() error
}

func (b *catalogBackend) Close() {
	for i := len(b.closes) - 1; i >= 0; i-- {
		_ = b.closes[i]()
	}
}

func openCatalog(ctx context.Context, cfg config.Config, log *slog.Logger) (*catalogBackend, error) {
	b := &catalogBackend{}

	switch cfg.Database.Driver {
	case "", "memory":
		b.repo = memory.NewSeeded()
	case "sqlite", "postgres":
		db, dialect, err := openSQL(cfg.Database)
		if err != nil {
			return nil, err
		}
		b.closes = append(b.closes, db.Close)
		b.checks = append(b.checks, db.PingContext)

		store, err := sqlstore.New(ctx, db, dialect)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate catalog: %w", err)
		}
		seeded, err := store.SeedIfEmpty(ctx, memory.SeedCategories(), memory.SeedProducts())
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			log.Info("catalog seeded", slog.String("driver", cfg.Database.Driver))
		}
		b.repo = store
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		b.closes = append(b.closes, client.Close)
		b.checks = append(b.checks, func(ctx context.Context) error { return client.Ping(ctx).Err() })
		b.repo = rediscache.New(b.repo, client, cfg.Cache.TTL, rediscache.WithLogger(log))
		log.Info("catalog cache enabled", slog.String("addr", cfg.Cache.RedisAddr))
	}

	return b, nil
}

func openSQL(cfg config.Database) (*sql.DB, sqlstore.Dialect, error) {
	if cfg.Driver == "sqlite" {
		path := cfg.URL
		if path == "" {
			path = "storefront.db"
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, sqlstore.SQLite, fmt.Errorf("open sqlite: %w", err)
		}
		return db, sqlstore.SQLite, nil
	}

	if cfg.URL == "" {
		return nil, sqlstore.Postgres, fmt.Errorf("DATABASE_URL is required for postgres")
	}
	db, err := postgres.OpenURL(cfg.URL)
	if err != nil {
		return nil, sqlstore.Postgres, fmt.Errorf("open postgres: %w", err)
	}
	return db, sqlstore.Postgres, nil
}

type relayClient interface {
	orderapp.Relay
	Close() error
}

type httpRelay struct{ *relay.HTTPClient }

func (httpRelay) Close() error { return nil }

// newRelay prefers the gRPC transport when an address is configured.
func newRelay(cfg config.Relay) (relayClient, string, error) {
	if cfg.GRPCAddr != "" {
		c, err := relay.DialGRPC(cfg.GRPCAddr, cfg.Timeout)
		if err != nil {
			return nil, "", err
		}
		return c, "grpc://" + cfg.GRPCAddr, nil
	}
	return httpRelay{relay.NewHTTPClient(cfg.URL, cfg.Timeout)}, cfg.URL, nil
}

// storefrontCORS lets browsers send the session cookie only to origins that
// were listed explicitly.
func storefrontCORS(origins []string) *httpx.CORSConfig {
	cors := httpx.PermissiveCORS(origins)
	cors.AllowCredentials = len(origins) > 0 && !slices.Contains(origins, "*")
	return cors
}

// meteredMux records every registered route under its pattern.
type meteredMux struct {
	mux *http.ServeMux
	m   *metrics.ServerMetrics
}

func (r meteredMux) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, r.m.Wrap(pattern, h))
}

func readyHandler(checks []readinessCheck) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}
