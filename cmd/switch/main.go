package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/accesstoken"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connectors/airwallex"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connectors/wise"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/metrics"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/payments"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/storage"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/storage/postgres"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/transport"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "switch",
		Short:        "Connector dispatch engine for payment processors",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting switch",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"storage_backend", cfg.Storage.Backend,
	)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(promReg)

	tokenStore, closeStore, err := buildTokenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	httpTransport := transport.NewHTTPTransport(cfg.HTTPClient)
	retrying := transport.NewRetryTransport(httpTransport, cfg.Retry)

	reg := registry.New()
	reg.Register(wise.Register())
	reg.Register(airwallex.Register())

	engine := payments.NewEngine(
		orchestration.NewState(retrying, &cfg.Connectors, logger),
		accesstoken.NewManager(tokenStore, m, logger),
		reg,
	)

	for _, name := range []string{wise.Name, airwallex.Name} {
		conn, err := engine.Registry.Get(name)
		if err != nil {
			return err
		}
		logger.Info("connector registered",
			"connector", conn.Name,
			"token_acquisition", string(conn.TokenAcquisition),
		)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("ops server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ops server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown failed", "error", err)
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func buildTokenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.TokenStore, func(), error) {
	if cfg.Storage.Backend == "postgres" {
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to token store: %w", err)
		}

		store := postgres.NewTokenStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	}

	return storage.NewMemoryTokenStore(), func() {}, nil
}
