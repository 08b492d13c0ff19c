package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	relayv1 "github.com/dwikikusuma/storefront/api/relay/v1"
	"github.com/dwikikusuma/storefront/internal/relay/app"
	"github.com/dwikikusuma/storefront/internal/relay/infra/events"
	"github.com/dwikikusuma/storefront/internal/relay/infra/telegram"
	"github.com/dwikikusuma/storefront/internal/relay/transport"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/dwikikusuma/storefront/pkg/kafka"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	cfg, cfgErr := config.Load()
	log := logger.New(logger.Options{Service: "relay", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})
	if cfgErr != nil {
		log.Warn("config file ignored", slog.Any("err", cfgErr))
	}

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	creds := app.Credentials{BotToken: cfg.Telegram.BotToken, ChatID: cfg.Telegram.ChatID}
	if creds.BotToken == "" || creds.ChatID == "" {
		// still serve, every send answers with the missing-config error
		log.Warn("telegram credentials not configured")
	}

	opts := []app.Option{app.WithLogger(log)}
	writer, err := kafka.NewClient(cfg.Kafka.Brokers).NewWriter(cfg.Kafka.Topic)
	switch {
	case errors.Is(err, kafka.ErrDisabled):
		log.Info("kafka disabled, order events will not be published")
	case err != nil:
		log.Error("kafka writer init failed", slog.Any("err", err))
		os.Exit(1)
	default:
		defer writer.Close()
		opts = append(opts, app.WithPublisher(events.NewKafkaPublisher(writer)))
		log.Info("publishing order events", slog.String("topic", cfg.Kafka.Topic))
	}

	svc := app.NewService(creds, telegram.NewClient(cfg.Telegram.APIURL, cfg.Relay.Timeout), opts...)

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg, "relay")

	mux := http.NewServeMux()
	sendOrder := httpx.CORS(httpx.PermissiveCORS(cfg.CORSAllowedOrigins))(transport.NewHTTPHandler(svc, log))
	mux.Handle("/send-order", m.Wrap("send_order", sendOrder))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("GET /metrics", metrics.Handler(reg))

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(mux, "relay"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Relay.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	relayv1.RegisterRelayServiceServer(grpcServer, transport.NewGRPCServer(svc))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("relay stopped", slog.Any("err", err))
	}
	log.Info("bye")
}
