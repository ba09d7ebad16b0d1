package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"github.com/watchlist/backend/internal/infrastructure/migration"
	"github.com/watchlist/backend/internal/infrastructure/persistence/models"
	"github.com/watchlist/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database holds a GORM connection to SQLite or PostgreSQL
type Database struct {
	DB     *gorm.DB
	driver string
	logger *zap.Logger
	repo   *GormMovieRepository
}

// NewDatabase opens the SQL store selected by cfg.Storage.Driver
func NewDatabase(cfg *config.Config, opts Options) (*Database, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	gormLoggerOpts := []logger.GormLoggerOption{}
	if opts.SlowQueryThreshold > 0 {
		gormLoggerOpts = append(gormLoggerOpts, logger.WithSlowThreshold(opts.SlowQueryThreshold))
	}
	gormCfg := &gorm.Config{
		Logger:                 logger.NewGormLogger(opts.Logger, logger.MapGormLogLevel(opts.LogLevel), gormLoggerOpts...),
		SkipDefaultTransaction: true,
	}

	var (
		dialector gorm.Dialector
		dbSystem  string
	)
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLite.Path)
		dbSystem = "sqlite"
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.DSN())
		dbSystem = "postgresql"
		gormCfg.PrepareStmt = true
	default:
		return nil, fmt.Errorf("driver %q is not a SQL backend", cfg.Storage.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Storage.Driver == config.DriverSQLite {
		// A second connection to ":memory:" would see an empty database,
		// and file databases serialize writers anyway.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tracingCfg := telemetry.DefaultDBTracingConfig()
	tracingCfg.Enabled = opts.TracingEnabled
	tracingCfg.DBSystem = dbSystem
	if opts.SlowQueryThreshold > 0 {
		tracingCfg.SlowQueryThresh = opts.SlowQueryThreshold
	}
	if err := telemetry.NewDBTracingPlugin(tracingCfg, opts.Logger).RegisterOtelGorm(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}

	return newDatabase(db, cfg.Storage.Driver, opts.Logger), nil
}

func newDatabase(db *gorm.DB, driver string, log *zap.Logger) *Database {
	return &Database{
		DB:     db,
		driver: driver,
		logger: log,
		repo:   NewGormMovieRepository(db),
	}
}

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; SQLite is a local store and is auto-migrated from the model.
func (d *Database) Migrate() error {
	switch d.driver {
	case config.DriverSQLite:
		if err := d.DB.AutoMigrate(&models.MovieModel{}); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return nil
	case config.DriverPostgres:
		sqlDB, err := d.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		// Not closed: the migrator shares, and would close, the connection pool
		m, err := migration.New(sqlDB, d.logger)
		if err != nil {
			return err
		}
		return m.Up()
	default:
		return fmt.Errorf("no migration strategy for driver %q", d.driver)
	}
}

// MovieRepository returns the GORM-backed movie repository
func (d *Database) MovieRepository() watchlist.MovieRepository {
	return d.repo
}

// Name identifies the backend in logs and health output
func (d *Database) Name() string {
	return d.driver
}

// Close closes the database connection
func (d *Database) Close(_ context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int           `json:"max_open_connections"`
	OpenConnections    int           `json:"open_connections"`
	InUse              int           `json:"in_use"`
	Idle               int           `json:"idle"`
	WaitCount          int64         `json:"wait_count"`
	WaitDuration       time.Duration `json:"wait_duration" swaggertype:"integer"`
}
