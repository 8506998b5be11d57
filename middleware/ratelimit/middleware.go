package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	Store              LimiterStore
	Stats              StatsStore
	KeyFn              KeyFunc
	KeyHeader          string
	TrustXForwardedFor bool
	RejectStatus       int
	// RetryAfter fixo. Se 0, deriva do RPS do Store (ceil(1/rps) segundos).
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
	Logger              *zap.Logger
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ri, hasRateInfo := opts.Store.(rateInfo)
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = time.Second
		if hasRateInfo {
			opts.RetryAfter = retryAfterFor(ri.RPS())
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)
			dec := Decide(opts.Store, key, opts.RetryAfter)

			if opts.AddRateLimitHeaders {
				h := w.Header()
				h.Set("X-RateLimit-Key", key)
				if hasRateInfo {
					h.Set("X-RateLimit-RPS", strconv.FormatFloat(ri.RPS(), 'f', -1, 64))
					h.Set("X-RateLimit-Burst", strconv.Itoa(ri.Burst()))
				}
				if dec.Remaining >= 0 {
					h.Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
				}
			}

			if opts.Stats != nil {
				ev := StatsEvent{
					Key:     key,
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				}
				if err := opts.Stats.Record(r.Context(), ev); err != nil {
					opts.Logger.Warn("ratelimit stats record failed", zap.Error(err))
				}
			}

			if !dec.Allowed {
				opts.Logger.Debug("ratelimit denied",
					zap.String("key", key),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
