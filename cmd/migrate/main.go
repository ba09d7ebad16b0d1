package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	flag "github.com/spf13/pflag"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"github.com/watchlist/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Watchlist schema migrations (PostgreSQL)

Usage:
  migrate [--log-level level] <command> [argument]

Commands:
  up                 apply every pending migration
  down               roll every migration back
  step <n>           apply n migrations, negative n rolls back
  goto <version>     migrate up or down to version
  version            print the applied version
  force <version>    mark version as applied without running it
  list               print the embedded migrations (no database needed)

The connection comes from the server configuration: config.toml or
WATCHLIST_DATABASE_{HOST,PORT,USER,PASSWORD,DBNAME,SSLMODE}, with
WATCHLIST_STORAGE_DRIVER=postgres.

Example:
  migrate step -1
`

var errUsage = errors.New("invalid usage")

// migrator is the part of migration.Migrator the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	GoTo(version uint) error
	Version() (uint, bool, error)
	Force(version int) error
}

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	// "step -1" must reach the command, not the flag parser
	flag.SetInterspersed(false)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if args[0] == "list" {
		if err := printMigrations(os.Stdout); err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		return
	}

	m, closeDB, err := openMigrator(log)
	if err != nil {
		log.Fatal("Failed to prepare migrations", zap.Error(err))
	}
	defer closeDB()

	if err := run(m, log, args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		}
		log.Fatal("Migration failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// openMigrator connects to the configured PostgreSQL database.
func openMigrator(log *zap.Logger) (*migration.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		return nil, nil, fmt.Errorf("storage driver is %q; versioned migrations only apply to %s",
			cfg.Storage.Driver, config.DriverPostgres)
	}

	log.Info("Connecting for migrations",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, func() {
		_ = m.Close()
		_ = db.Close()
	}, nil
}

func printMigrations(w io.Writer) error {
	names, err := migration.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// run executes one migration command against m.
func run(m migrator, log *zap.Logger, command string, args []string) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(command, args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(command, args)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: goto needs a non-negative version", errUsage)
		}
		return m.GoTo(uint(n))
	case "force":
		n, err := intArg(command, args)
		if err != nil {
			return err
		}
		log.Warn("Forcing migration version", zap.Int("version", n))
		return m.Force(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func intArg(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s takes exactly one number", errUsage, command)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", errUsage, command, args[0])
	}
	return n, nil
}
