package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr            string
	AllowOrigins    string
	LogLevel        log.Level
	MatchInterval   time.Duration
	ShutdownTimeout time.Duration
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load parses args (without the program name). Every flag falls back to a
// CHESS_* environment variable, then to its default.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	interval := fs.String("match-interval", getenv("CHESS_MATCH_INTERVAL", "1s"), "how often matchmaking pairs queued players")
	shutdown := fs.String("shutdown-timeout", getenv("CHESS_SHUTDOWN_TIMEOUT", "10s"), "graceful shutdown limit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: *origins,
	}

	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(*level))]
	if !ok {
		return Config{}, fmt.Errorf("invalid log level %q", *level)
	}
	cfg.LogLevel = lvl

	var err error
	if cfg.MatchInterval, err = parsePositiveDuration("match-interval", *interval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = parsePositiveDuration("shutdown-timeout", *shutdown); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parsePositiveDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
