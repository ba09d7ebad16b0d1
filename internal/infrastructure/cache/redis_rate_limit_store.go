package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRateLimitPrefix = "watchlist:ratelimit:"

// RedisRateLimitStore keeps fixed-window counters in Redis so that several
// API instances share one budget per client
type RedisRateLimitStore struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	period    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisRateLimitStore connects to Redis and creates a store
func NewRedisRateLimitStore(cfg RedisConfig, limit int, period time.Duration) (*RedisRateLimitStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRateLimitStoreWithClient(client, "", limit, period), nil
}

// NewRedisRateLimitStoreWithClient creates a store with an existing Redis client
func NewRedisRateLimitStoreWithClient(client *redis.Client, keyPrefix string, limit int, period time.Duration) *RedisRateLimitStore {
	if keyPrefix == "" {
		keyPrefix = defaultRateLimitPrefix
	}
	return &RedisRateLimitStore{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		period:    period,
	}
}

// Allow counts one request for key. The window starts with the first request;
// INCR and the NX expiry run in one MULTI so a crash cannot leave a counter
// without a TTL.
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string) (RateDecision, error) {
	k := s.keyPrefix + key

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, s.period)
		pttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return RateDecision{}, fmt.Errorf("failed to count request: %w", err)
	}

	resetIn := pttl.Val()
	if resetIn < 0 {
		resetIn = s.period
	}
	return decide(incr.Val(), s.limit, resetIn), nil
}

// Close closes the Redis client
func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}
