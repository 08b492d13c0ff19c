package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/rediscache"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/sqlstore"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := openCatalog(ctx, config.Config{Database: config.Database{Driver: "memory"}}, logger.Discard())
		require.NoError(t, err)
		defer b.Close()

		assert.IsType(t, &memory.Store{}, b.repo)
		products, err := b.repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, len(memory.SeedProducts()))
	})

	t.Run("sqlite seeds once", func(t *testing.T) {
		cfg := config.Config{Database: config.Database{Driver: "sqlite", URL: ":memory:"}}
		b, err := openCatalog(ctx, cfg, logger.Discard())
		require.NoError(t, err)
		defer b.Close()

		assert.IsType(t, &sqlstore.Store{}, b.repo)
		products, err := b.repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, len(memory.SeedProducts()))
		require.Len(t, b.checks, 1)
		assert.NoError(t, b.checks[0](ctx))
	})

	t.Run("redis cache wraps the store", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Config{
			Database: config.Database{Driver: "memory"},
			Cache:    config.Cache{RedisAddr: mr.Addr(), TTL: time.Minute},
		}
		b, err := openCatalog(ctx, cfg, logger.Discard())
		require.NoError(t, err)
		defer b.Close()

		assert.IsType(t, &rediscache.Repo{}, b.repo)
		_, err = b.repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, mr.Keys())
	})

	t.Run("postgres needs a url", func(t *testing.T) {
		_, err := openCatalog(ctx, config.Config{Database: config.Database{Driver: "postgres"}}, logger.Discard())
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := openCatalog(ctx, config.Config{Database: config.Database{Driver: "mongo"}}, logger.Discard())
		assert.Error(t, err)
	})
}

func TestNewRelay(t *testing.T) {
	c, target, err := newRelay(config.Relay{URL: "http://relay:3001/send-order", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, httpRelay{}, c)
	assert.Equal(t, "http://relay:3001/send-order", target)
	assert.NoError(t, c.Close())

	c, target, err = newRelay(config.Relay{URL: "http://ignored", GRPCAddr: "relay:8081", Timeout: time.Second})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(target, "grpc://"))
	assert.NoError(t, c.Close())
}

func TestMeteredMux(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg, "test")
	mux := http.NewServeMux()
	meteredMux{mux: mux, m: m}.Handle("GET /api/products/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET /api/products/{id}", "404")))
}

func TestReadyHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	readyHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	failing := func(context.Context) error { return errors.New("down") }
	rec = httptest.NewRecorder()
	readyHandler([]readinessCheck{failing}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStorefrontCORSCredentials(t *testing.T) {
	assert.False(t, storefrontCORS(nil).AllowCredentials)
	assert.False(t, storefrontCORS([]string{"*"}).AllowCredentials)
	assert.False(t, storefrontCORS([]string{"https://shop.uz", "*"}).AllowCredentials)
	assert.True(t, storefrontCORS([]string{"https://shop.uz"}).AllowCredentials)
}
