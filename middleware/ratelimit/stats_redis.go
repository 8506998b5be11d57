package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores em hashes do Redis, num pipeline por evento.
//
// Chaves (prefixo padrão "gyms:ratelimit"):
//
//	<prefix>:total                      allowed/denied cumulativos, sem TTL
//	<prefix>:minute:<YYYYMMDDhhmm>      bucket por minuto (bucket=minute), com TTL
//	<prefix>:route                      "<METHOD> <path>:allowed|denied"
//	<prefix>:key:<client key>           por cliente (trackKeys), com TTL
type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	ttl    time.Duration
	bucket string // "minute" (padrão) ou "none"

	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "gyms:ratelimit",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range s.ops(ev) {
			pipe.HIncrBy(ctx, op.key, op.field, 1)
			if op.expire && s.ttl > 0 {
				pipe.Expire(ctx, op.key, s.ttl)
			}
		}
		return nil
	})
	return err
}

type hashIncr struct {
	key    string
	field  string
	expire bool
}

// ops monta os incrementos de um evento; separado de Record para testar sem Redis.
func (s *RedisStatsStore) ops(ev StatsEvent) []hashIncr {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	ops := []hashIncr{{key: s.prefix + ":total", field: field}}

	if s.bucket == "minute" {
		ops = append(ops, hashIncr{
			key:    s.prefix + ":minute:" + at.UTC().Format("200601021504"),
			field:  field,
			expire: true,
		})
	}

	route := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Path))
	if route != "" {
		ops = append(ops, hashIncr{key: s.prefix + ":route", field: route + ":" + field})
	}

	if s.trackKeys {
		if k := strings.TrimSpace(ev.Key); k != "" {
			ops = append(ops, hashIncr{key: s.prefix + ":key:" + k, field: field, expire: true})
		}
	}
	return ops
}
