package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gym-listings/internal/config"
	"gym-listings/internal/logging"
	"gym-listings/internal/server"
	"gym-listings/listing/application"
	"gym-listings/listing/infra"
	"gym-listings/listing/web"
	"gym-listings/middleware/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "webapi",
		Short:         "Serve the fixed gym listing at GET /gyms",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "optional YAML config file")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "webapi:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(config.WebAPI, configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(string(config.WebAPI), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(string(config.WebAPI))
	}

	stack, err := server.NewStack(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer func() { _ = stack.Close() }()

	mux := http.NewServeMux()
	api := &web.API{
		Catalog: application.Catalog{Source: infra.FixedSource{}},
		Logger:  logger,
		OpenAPI: cfg.App.IsDevelopment(),
	}
	api.Register(mux)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	logger.Info("webapi starting",
		zap.String("addr", cfg.Listen.Addr),
		zap.String("env", cfg.App.Env),
		zap.Bool("openapi", api.OpenAPI))
	return server.Serve(ctx, cfg, stack.Wrap(mux), logger)
}
