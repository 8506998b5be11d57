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
	"gym-listings/listing/domain"
	"gym-listings/listing/infra"
	"gym-listings/listing/web"
	"gym-listings/middleware/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "mvcapp",
		Short:         "Render the gym listing fetched from the webapi",
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
		fmt.Fprintln(os.Stderr, "mvcapp:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(config.MVCApp, configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(string(config.MVCApp), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(string(config.MVCApp))
	}

	stack, err := server.NewStack(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer func() { _ = stack.Close() }()

	view, err := web.NewTemplateView()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	clientCfg := infra.DefaultClientConfig()
	clientCfg.Timeout = cfg.Fetch.Timeout
	opts := []infra.HTTPSourceOption{infra.WithHTTPClient(infra.NewClient(clientCfg))}
	if m != nil {
		opts = append(opts, infra.WithFetchObserver(m))
	}
	var src domain.Source = infra.NewHTTPSource(cfg.Upstream.URL, opts...)

	mux := http.NewServeMux()
	home := &web.HomeController{
		Home:   application.Home{Source: src},
		View:   view,
		Logger: logger,
	}
	home.Register(mux)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	logger.Info("mvcapp starting",
		zap.String("addr", cfg.Listen.Addr),
		zap.String("upstream", cfg.Upstream.URL),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout))
	return server.Serve(ctx, cfg, stack.Wrap(mux), logger)
}
