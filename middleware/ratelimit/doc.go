// Package ratelimit fornece middlewares net/http de rate limit por cliente e
// de limite de concorrência, usados na frente da webapi e do mvcapp.
//
// Peças:
//
//   - Store: token bucket por chave (golang.org/x/time/rate) com limpeza de chaves ociosas
//   - Middleware: extrai a chave (header/XFF/RemoteAddr), decide, responde 429 + Retry-After
//   - ConcurrencyMiddleware: semáforo com timeout opcional, responde 503
//   - StatsStore: registro best-effort das decisões (memória, Redis, Prometheus)
//
// Variáveis como RATE_RPS, RATE_BURST, CONCURRENCY_MAX e RATE_STATS_BACKEND
// controlam o comportamento nos binários (ver internal/config).
package ratelimit
