// Package config loads the settings of the watchlist CLI.
package config

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when neither the flag nor the environment sets one
const DefaultAPIURL = "http://localhost:8080/api/movie"

// Config holds the CLI settings. The API URL is the only setting that
// changes behavior; the log level only affects diagnostics on stderr.
type Config struct {
	APIURL   string
	LogLevel string
}

// Load reads the configuration from args and the environment. A flag that
// is set wins over WATCHLIST_API_URL / WATCHLIST_LOG_LEVEL, which win over
// the defaults. It returns flag.ErrHelp when -h or --help is given.
func Load(args []string, output io.Writer) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("watchlist", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.String("api-url", DefaultAPIURL, "base URL of the movie API")
	fs.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("WATCHLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlag("api_url", fs.Lookup("api-url")); err != nil {
		return nil, fmt.Errorf("error binding api-url: %w", err)
	}
	if err := v.BindPFlag("log_level", fs.Lookup("log-level")); err != nil {
		return nil, fmt.Errorf("error binding log-level: %w", err)
	}

	cfg := &Config{
		APIURL:   strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/"),
		LogLevel: v.GetString("log_level"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url: host is required")
	}
	return nil
}
