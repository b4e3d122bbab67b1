package storepipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the narrow slice of *redis.Client RedisStore depends on,
// so tests can substitute a fake without a running server.
type redisClient interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	IncrBy(ctx context.Context, key string, value int64) *redis.IntCmd
	Close() error
}

// RedisStore is the production Store backend. A connection is opened once
// at bootstrap and held for the worker's lifetime; a dropped connection
// surfaces as an error from the next command rather than being retried
// internally, matching how the rest of the pipeline treats storage faults
// as restartable rather than self-healing.
type RedisStore struct {
	client redisClient
}

// DialRedisStore parses connStr (a redis:// URL) and opens a connection.
func DialRedisStore(connStr string) (*RedisStore, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("storepipe: parse redis connection string: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) SetAdd(ctx context.Context, key, member string) error {
	return s.client.SAdd(ctx, key, member).Err()
}

func (s *RedisStore) SetRemove(ctx context.Context, key, member string) error {
	return s.client.SRem(ctx, key, member).Err()
}

func (s *RedisStore) SortedSetAdd(ctx context.Context, key, member string, score int64) error {
	return s.client.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: member}).Err()
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0*time.Second).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) IncrBy(ctx context.Context, key string, delta int64) error {
	return s.client.IncrBy(ctx, key, delta).Err()
}
