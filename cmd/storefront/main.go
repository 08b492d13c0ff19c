package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	carthttp "github.com/dwikikusuma/storefront/internal/cart/transport"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/storefront/internal/catalog/transport"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderadapter "github.com/dwikikusuma/storefront/internal/order/infra/adapter"
	orderhttp "github.com/dwikikusuma/storefront/internal/order/transport"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const (
	sweepInterval = time.Minute
	sessionIdle   = 2 * time.Hour
)

func main() {
	cfg, cfgErr := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})
	if cfgErr != nil {
		log.Warn("config file ignored", slog.Any("err", cfgErr))
	}

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	backend, err := openCatalog(ctx, cfg, log)
	if err != nil {
		log.Error("catalog init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer backend.Close()

	relayClient, relayTarget, err := newRelay(cfg.Relay)
	if err != nil {
		log.Error("relay client init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer relayClient.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(reg, "storefront")

	// Catalog
	catalogSvc := catalogapp.NewService(backend.repo)

	// Cart
	cartRepo := cartmem.NewRepo()
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc))

	// Order
	orderSvc := orderapp.NewService(
		orderadapter.NewCartServiceReader(cartSvc),
		relayClient,
		orderapp.WithSuccessDelay(cfg.SuccessDelay),
		orderapp.WithLogger(log),
		orderapp.WithOutcomeHook(func(outcome string) { m.Orders.WithLabelValues(outcome).Inc() }),
	)
	defer orderSvc.Close()

	mux := http.NewServeMux()
	routes := meteredMux{mux: mux, m: m}
	cataloghttp.NewHandler(catalogSvc, log).Register(routes, httpx.AdminOnly(cfg.AdminToken))
	carthttp.NewHandler(cartSvc, log).Register(routes)
	orderhttp.NewHandler(orderSvc, log).Register(routes)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("GET /readyz", readyHandler(backend.checks))
	mux.Handle("GET /metrics", metrics.Handler(reg))

	handler := otelhttp.NewHandler(httpx.CORS(storefrontCORS(cfg.CORSAllowedOrigins))(httpx.Sessions(mux)), "storefront")

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Relay.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting",
			slog.String("addr", addr),
			slog.String("catalog", cfg.Database.Driver),
			slog.String("relay", relayTarget))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return cartRepo.RunSweeper(gctx, sweepInterval, sessionIdle, log)
	})

	g.Go(func() error {
		t := time.NewTicker(sweepInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if n := orderSvc.Sweep(sessionIdle); n > 0 {
					log.Debug("swept idle checkouts", slog.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
	}
	log.Info("bye")
}
