package ratelimit

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ConcurrencyOptions struct {
	Max          int
	RejectStatus int
	// AcquireTimeout <= 0 espera até o ctx da requisição encerrar.
	AcquireTimeout time.Duration
	Logger         *zap.Logger
}

// slots é um semáforo simples baseado em channel.
type slots chan struct{}

// acquire bloqueia até conseguir uma vaga ou até ctx encerrar.
// A função de release deve ser chamada exatamente uma vez.
func (s slots) acquire(ctx context.Context, timeout time.Duration) (func(), bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case s <- struct{}{}:
		return func() { <-s }, true
	case <-ctx.Done():
		return nil, false
	}
}

func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	pool := make(slots, opts.Max)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := pool.acquire(r.Context(), opts.AcquireTimeout)
			if !ok {
				opts.Logger.Debug("concurrency slot not acquired",
					zap.Int("max", opts.Max),
					zap.String("path", r.URL.Path))
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
