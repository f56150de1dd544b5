package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crpt-gateway/crpt/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	// ttl aplica apenas em chaves de série temporal.
	// total e por tipo de documento são cumulativos e não expiram.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "crpt:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Keys devolve as chaves que um evento incrementa (em ordem de escrita).
func (s *RedisStatsStore) Keys(ev domain.StatsEvent) []string {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	keys := []string{s.prefix + ":total"}
	if s.bucket == "minute" {
		keys = append(keys, fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")))
	}
	if ev.DocType != "" {
		keys = append(keys, s.prefix+":type:"+string(ev.DocType))
	}
	return keys
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	field := string(ev.Outcome)
	if field == "" {
		field = string(domain.OutcomeFailed)
	}

	pipe := s.rdb.Pipeline()
	for _, key := range s.Keys(ev) {
		pipe.HIncrBy(ctx, key, field, 1)
		if strings.Contains(key, ":minute:") && s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}
	if ev.Duration > 0 {
		pipe.HIncrBy(ctx, s.prefix+":latency_ms", field, ev.Duration.Milliseconds())
	}

	_, err := pipe.Exec(ctx)
	return err
}
