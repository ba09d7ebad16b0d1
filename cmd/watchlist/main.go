package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/watchlist/backend/internal/client/api"
	"github.com/watchlist/backend/internal/client/cli"
	"github.com/watchlist/backend/internal/client/config"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(2)
	}

	// Diagnostics go to stderr so they never interleave with the list
	log, err := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05.000",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Debug("Using watchlist API", zap.String("api_url", cfg.APIURL))

	app := cli.NewApp(api.New(cfg.APIURL), os.Stdin, os.Stdout, log)
	app.Run(context.Background())
}
