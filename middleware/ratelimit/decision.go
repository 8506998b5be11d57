package ratelimit

import (
	"math"
	"time"
)

// Decision é o resultado de uma consulta ao limiter.
type Decision struct {
	Allowed bool
	// RetryAfter vai no header Retry-After quando bloqueia. Zero quando permitido.
	RetryAfter time.Duration
	// Remaining é o número de tokens inteiros que sobraram, ou -1 se desconhecido.
	Remaining int
}

type tokenCounter interface {
	Tokens() float64
}

// Decide consulta o limiter da chave. Sem store (ou sem limiter), permite.
func Decide(store LimiterStore, key string, retryAfter time.Duration) Decision {
	if store == nil {
		return Decision{Allowed: true, Remaining: -1}
	}
	lim := store.Get(key)
	if lim == nil {
		return Decision{Allowed: true, Remaining: -1}
	}

	allowed := lim.Allow()
	remaining := -1
	if tc, ok := lim.(tokenCounter); ok {
		remaining = max(int(math.Floor(tc.Tokens())), 0)
	}
	if allowed {
		return Decision{Allowed: true, Remaining: remaining}
	}
	return Decision{Allowed: false, RetryAfter: retryAfter, Remaining: remaining}
}

// retryAfterFor devolve o tempo para um token novo: ceil(1/rps) segundos, no mínimo 1s.
func retryAfterFor(rps float64) time.Duration {
	if rps <= 0 {
		return time.Second
	}
	secs := math.Ceil(1 / rps)
	return time.Duration(max(secs, 1)) * time.Second
}
