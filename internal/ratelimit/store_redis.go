package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for contact form rate limit windows
	redisKeyPrefix = "contact:ratelimit:"

	fieldCount = "count"
	fieldReset = "reset_ms"
)

// RedisStore keeps entries in Redis so replicas share one counter per client.
// Each entry is a hash that expires at its reset time.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the key prefix, mostly for test isolation
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore constructs a Redis-backed store
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewRedisClient parses url and verifies the connection
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	values, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(values) == 0) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	count, err := strconv.Atoi(values[fieldCount])
	if err != nil {
		return Entry{}, false, fmt.Errorf("corrupt rate limit count for %q: %w", key, err)
	}
	resetMs, err := strconv.ParseInt(values[fieldReset], 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("corrupt rate limit reset for %q: %w", key, err)
	}

	return Entry{Count: count, ResetTime: time.UnixMilli(resetMs)}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	k := s.prefix + key

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, fieldCount, entry.Count, fieldReset, entry.ResetTime.UnixMilli())
	// Keep the key one second past the window so Get still sees the entry
	// at exactly ResetTime; the limiter ignores it after that.
	pipe.PExpireAt(ctx, k, entry.ResetTime.Add(time.Second))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
