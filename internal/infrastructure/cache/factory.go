package cache

import (
	"fmt"

	"github.com/watchlist/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RateLimitStoreFactory creates rate limit stores based on configuration
type RateLimitStoreFactory struct {
	redisConfig           config.RedisConfig
	httpConfig            config.HTTPConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RateLimitStoreFactoryOption is a functional option for configuring the factory
type RateLimitStoreFactoryOption func(*RateLimitStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) RateLimitStoreFactoryOption {
	return func(f *RateLimitStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// per-instance counters. Default is true.
func WithInMemoryFallback(allow bool) RateLimitStoreFactoryOption {
	return func(f *RateLimitStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewRateLimitStoreFactory creates a new factory
func NewRateLimitStoreFactory(redisCfg config.RedisConfig, httpCfg config.HTTPConfig, opts ...RateLimitStoreFactoryOption) *RateLimitStoreFactory {
	f := &RateLimitStoreFactory{
		redisConfig:           redisCfg,
		httpConfig:            httpCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates the store named by http.rate_limit_store
func (f *RateLimitStoreFactory) CreateStore() (RateLimitStore, error) {
	limit, period := f.httpConfig.RateLimitRequests, f.httpConfig.RateLimitWindow

	if f.httpConfig.RateLimitStore != "redis" {
		return NewInMemoryRateLimitStore(limit, period), nil
	}

	store, err := NewRedisRateLimitStore(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, limit, period)
	if err == nil {
		f.logger.Info("Using Redis rate limit store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis rate limit store: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory rate limit store",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err),
	)
	return NewInMemoryRateLimitStore(limit, period), nil
}
