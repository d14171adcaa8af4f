// Package config reads server settings from flags, falling back to CHESS_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr           string
	AllowedOrigins string
	LogLevel       zerolog.Level
	LogPretty      bool
}

// Load parses args (without the program name). Flags win over the environment, which wins over the
// defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfg Config
	var level string
	fs.StringVar(&cfg.Addr, "addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowedOrigins, "allowed-origins", getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated CORS and websocket origins")
	fs.StringVar(&level, "log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", getenb("CHESS_LOG_PRETTY", false), "human-readable console logs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}
	cfg.LogLevel = lvl
	if len(cfg.Origins()) == 0 {
		return Config{}, fmt.Errorf("no allowed origins")
	}
	return cfg, nil
}

// Origins splits AllowedOrigins into its entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Logger builds the process logger writing to out.
func (c Config) Logger(out io.Writer) zerolog.Logger {
	if c.LogPretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(c.LogLevel).With().Timestamp().Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
