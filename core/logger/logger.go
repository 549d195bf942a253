package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config controls logger construction.
type Config struct {
	appName string
	level   slog.Level
	json    bool
	output  io.Writer
}

// Option is a functional option for configuring the logger.
type Option func(*Config)

// WithDevelopment configures text output at debug level, suitable for local runs.
func WithDevelopment(appName string) Option {
	return func(c *Config) {
		c.appName = appName
		c.level = slog.LevelDebug
		c.json = false
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(appName string) Option {
	return func(c *Config) {
		c.appName = appName
		c.level = slog.LevelInfo
		c.json = true
	}
}

// WithLevel overrides the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *Config) { c.level = level }
}

// WithJSONFormatter forces JSON output regardless of environment preset.
func WithJSONFormatter() Option {
	return func(c *Config) { c.json = true }
}

// WithOutput redirects log output, primarily for tests.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		if w != nil {
			c.output = w
		}
	}
}

// New creates a slog.Logger from the provided options.
// Without options it logs text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &Config{level: slog.LevelInfo, output: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	ho := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, ho)
	} else {
		h = slog.NewTextHandler(cfg.output, ho)
	}

	log := slog.New(h)
	if cfg.appName != "" {
		log = log.With(slog.String("app", cfg.appName))
	}
	return log
}

// Discard returns a logger that drops everything. Components use it as the
// default when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
