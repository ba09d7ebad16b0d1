package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Backend is an opened store that can hand out the movie repository.
type Backend interface {
	MovieRepository() watchlist.MovieRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Name() string
}

// Options carries cross-cutting settings for opening a backend.
type Options struct {
	Logger             *zap.Logger
	LogLevel           string
	TracingEnabled     bool
	SlowQueryThreshold time.Duration
}

// Open connects to the store selected by cfg.Storage.Driver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, opts Options) (Backend, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		return NewMongoBackend(ctx, &cfg.Mongo, opts)
	case config.DriverSQLite, config.DriverPostgres:
		db, err := NewDatabase(cfg, opts)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
