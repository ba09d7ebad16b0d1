package persistence

import (
	"context"
	"fmt"

	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// MongoBackend holds the MongoDB client and the movie collection.
type MongoBackend struct {
	client *mongo.Client
	repo   *MongoMovieRepository
	logger *zap.Logger
}

// NewMongoBackend connects to MongoDB, verifies the connection and ensures the
// collection's indexes exist.
func NewMongoBackend(ctx context.Context, cfg *config.MongoConfig, opts Options) (*MongoBackend, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.LogCommands {
		clientOpts.SetMonitor(logger.NewMongoMonitor(opts.Logger))
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	repo := NewMongoMovieRepository(client.Database(cfg.Database).Collection(cfg.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	opts.Logger.Info("Connected to MongoDB",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection),
	)

	return &MongoBackend{client: client, repo: repo, logger: opts.Logger}, nil
}

// MovieRepository returns the Mongo-backed movie repository
func (b *MongoBackend) MovieRepository() watchlist.MovieRepository {
	return b.repo
}

// Ping checks that the primary is reachable
func (b *MongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// Name identifies the backend in logs and health output
func (b *MongoBackend) Name() string {
	return config.DriverMongo
}
