// Package server monta a cadeia de middlewares e o ciclo de vida HTTP
// compartilhados pela webapi e pelo mvcapp.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gym-listings/internal/config"
	"gym-listings/listing/web"
	"gym-listings/middleware/metrics"
	"gym-listings/middleware/ratelimit"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stack é a cadeia de borda já configurada. Close libera o cliente Redis (se houver).
type Stack struct {
	Wrap    func(http.Handler) http.Handler
	Limiter *ratelimit.Store
	Stats   ratelimit.StatsStore

	closers []func() error
}

func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewStack monta, de fora para dentro:
// RequestID, AccessLog, métricas, Recover, HTTPSRedirect, rate limit, concorrência.
// AccessLog e métricas ficam por fora para ver também panics, 307, 429 e 503;
// essas respostas não chegam ao ServeMux e contam com route "other".
// O janitor do limiter para quando ctx encerrar.
func NewStack(ctx context.Context, cfg config.Config, logger *zap.Logger, m *metrics.Metrics) (*Stack, error) {
	s := &Stack{}

	stats, err := s.buildStats(ctx, cfg.Rate.Stats, m)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Stats = stats

	mws := []func(http.Handler) http.Handler{
		web.RequestID,
		web.AccessLog(logger),
	}
	// nenhum middleware abaixo troca o *http.Request, então o r.Pattern
	// preenchido pelo ServeMux chega até as métricas
	if m != nil {
		mws = append(mws, m.Middleware)
	}
	mws = append(mws,
		web.Recover(logger),
		web.HTTPSRedirect(cfg.HTTPS.Port, cfg.Trust.XFF, logger),
	)

	if cfg.Rate.Enabled {
		s.Limiter = ratelimit.NewStore(cfg.Rate.RPS, cfg.Rate.Burst)
		s.Limiter.StartJanitor(ctx)
		mws = append(mws, ratelimit.Middleware(ratelimit.Options{
			Store:               s.Limiter,
			Stats:               stats,
			KeyHeader:           cfg.Rate.KeyHeader,
			TrustXForwardedFor:  cfg.Trust.XFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.Retry.After,
			AddRateLimitHeaders: cfg.Rate.AddHeaders,
			Logger:              logger,
		}))
	}

	mws = append(mws, ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.Concurrency.Max,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.Concurrency.Timeout,
		Logger:         logger,
	}))

	s.Wrap = func(h http.Handler) http.Handler { return web.Chain(h, mws...) }

	logger.Info("edge configured",
		zap.Bool("rate_enabled", cfg.Rate.Enabled),
		zap.Float64("rate_rps", cfg.Rate.RPS),
		zap.Int("rate_burst", cfg.Rate.Burst),
		zap.String("rate_key_header", cfg.Rate.KeyHeader),
		zap.Bool("trust_xff", cfg.Trust.XFF),
		zap.String("stats_backend", cfg.Rate.Stats.Backend),
		zap.Int("concurrency_max", cfg.Concurrency.Max),
		zap.Duration("concurrency_timeout", cfg.Concurrency.Timeout),
		zap.Int("https_port", cfg.HTTPS.Port))
	return s, nil
}

func (s *Stack) buildStats(ctx context.Context, cfg config.StatsConfig, m *metrics.Metrics) (ratelimit.StatsStore, error) {
	var stores []ratelimit.StatsStore
	if m != nil {
		stores = append(stores, m)
	}

	switch strings.ToLower(cfg.Backend) {
	case "":
	case "memory":
		stores = append(stores, ratelimit.NewMemoryStatsStore(ratelimit.WithTrackKeys(cfg.TrackKeys)))
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s.closers = append(s.closers, rdb.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("redis stats ping error: %w", err)
		}

		stores = append(stores, ratelimit.NewRedisStatsStore(rdb,
			ratelimit.WithStatsPrefix(cfg.Prefix),
			ratelimit.WithStatsTTL(cfg.TTL),
			ratelimit.WithStatsBucket(cfg.Bucket),
			ratelimit.WithStatsTrackKeys(cfg.TrackKeys),
		))
	default:
		return nil, fmt.Errorf("unsupported stats backend %q", cfg.Backend)
	}

	if len(stores) == 0 {
		return nil, nil
	}
	return ratelimit.MultiStats(stores...), nil
}

// Serve escuta em cfg.Listen.Addr e, com certificado configurado, também em
// HTTPS_PORT com TLS. Para em ctx.Done() com shutdown gracioso.
func Serve(ctx context.Context, cfg config.Config, h http.Handler, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Listen.Addr)
	if err != nil {
		return err
	}

	if !cfg.HTTPS.ServesTLS() {
		if cfg.HTTPS.Port > 0 {
			logger.Warn("https port set without certificate; TLS must be terminated by a proxy on that port",
				zap.Int("https_port", cfg.HTTPS.Port),
				zap.Bool("trust_xff", cfg.Trust.XFF))
		}
		return ServeListener(ctx, ln, h, logger)
	}

	host, _, err := net.SplitHostPort(cfg.Listen.Addr)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("listen addr: %w", err)
	}
	tlsLn, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(cfg.HTTPS.Port)))
	if err != nil {
		_ = ln.Close()
		return err
	}
	return ServeListeners(ctx, ln, tlsLn, cfg.HTTPS, h, logger)
}

func ServeListener(ctx context.Context, ln net.Listener, h http.Handler, logger *zap.Logger) error {
	return ServeListeners(ctx, ln, nil, config.HTTPSConfig{}, h, logger)
}

// ServeListeners serve h em ln (texto puro) e, se tlsLn != nil, em tlsLn com o
// certificado de tlsCfg. Os dois listeners dividem o mesmo http.Server.
func ServeListeners(ctx context.Context, ln, tlsLn net.Listener, tlsCfg config.HTTPSConfig, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if tlsLn != nil {
		g.Go(func() error {
			logger.Info("listening tls", zap.String("addr", tlsLn.Addr().String()))
			if err := srv.ServeTLS(tlsLn, tlsCfg.CertFile, tlsCfg.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				_ = tlsLn.Close()
				return fmt.Errorf("tls listener: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
