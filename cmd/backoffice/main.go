package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pharmakit/backoffice/admin"
	"github.com/pharmakit/backoffice/core/cache"
	"github.com/pharmakit/backoffice/core/config"
	"github.com/pharmakit/backoffice/core/logger"
	"github.com/pharmakit/backoffice/core/session"
	"github.com/pharmakit/backoffice/integration/cms"
	"github.com/pharmakit/backoffice/integration/database/pg"
	"github.com/pharmakit/backoffice/integration/database/redis"
	"github.com/pharmakit/backoffice/integration/marketplace"
	"github.com/pharmakit/backoffice/pkg/apiclient"
)

type appConfig struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	BackendURL      string        `env:"BACKEND_URL,required"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	SessionBackend  string        `env:"SESSION_BACKEND" envDefault:"file"`
	SessionFile     string        `env:"SESSION_FILE" envDefault:"backoffice-session.json"`
	CMSEnabled      bool          `env:"CMS_ENABLED" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	var log *slog.Logger
	if cfg.Environment == "production" {
		log = logger.New(logger.WithProduction("backoffice"))
	} else {
		log = logger.New(logger.WithDevelopment("backoffice"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, storeCheck, cleanup, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := session.NewManager(ctx, store, session.WithLogger(log))
	if err != nil {
		return err
	}

	requests := cache.New(cache.WithLogger(log))
	defer requests.Close()

	api := apiclient.New(cfg.BackendURL,
		apiclient.WithTokenSource(sessions.Token),
		apiclient.WithLogger(log),
	)
	backend := marketplace.New(api, requests)

	opts := []admin.Option{admin.WithLogger(log)}
	if storeCheck != nil {
		opts = append(opts, admin.WithHealthchecks(storeCheck))
	}
	if cfg.CMSEnabled {
		var cmsCfg cms.Config
		if err := config.Load(&cmsCfg); err != nil {
			return err
		}
		blog, err := cms.New(cmsCfg)
		if err != nil {
			return err
		}
		opts = append(opts, admin.WithBlog(blog))
	}

	handler := admin.New(backend, sessions, opts...)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.Key("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildSessionStore constructs the durable session backend selected by
// config. It also returns a readiness check for the backing connection
// (nil for backends without one) and a cleanup that releases it.
func buildSessionStore(ctx context.Context, cfg appConfig) (session.Store, func(context.Context) error, func(), error) {
	noop := func() {}
	switch cfg.SessionBackend {
	case "memory":
		return session.NewMemoryStore(), nil, noop, nil
	case "file":
		return session.NewFileStore(cfg.SessionFile), nil, noop, nil
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return session.NewRedisStore(client), redis.Healthcheck(client), func() { _ = client.Close() }, nil
	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := session.NewPGStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, pg.Healthcheck(pool), pool.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
