package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"doubtsolver/internal/config"
	"doubtsolver/internal/db"
	"doubtsolver/internal/db/mock"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/server"
	"doubtsolver/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadEnvFunc         = func() error { return godotenv.Load() }
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	setLogFormatFunc    = applog.SetFormat
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	if err := loadEnvFunc(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.Warn(ctx, "failed to load .env file", "error", err)
	}

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	if cfg.Logging.Format != "" {
		if err := setLogFormatFunc(cfg.Logging.Format); err != nil {
			applog.Error(ctx, "invalid log format", "format", cfg.Logging.Format, "error", err)
			return 1
		}
	}

	profiles, demoProfile, err := openStore(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Store:          profiles,
		HashedAccounts: cfg.Auth.HashedAccounts,
		LegacyHTMLPath: cfg.Legacy.HTMLPath,
		DemoProfile:    demoProfile,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	signals, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	applog.Info(ctx, "http server started", "addr", cfg.Server.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-signals:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	applog.Info(ctx, "http server stopped")
	return 0
}

// openStore picks the profile store: the seeded mock database, the configured
// database, or an in-process map when neither is set.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, string, error) {
	var (
		database *gorm.DB
		err      error
	)
	switch {
	case cfg.UseMock:
		applog.Info(ctx, "using mock database", "demoProfile", mock.DemoProfile)
		database, err = newMockDatabaseFunc(ctx)
		if err != nil {
			return nil, "", err
		}
		return store.NewDB(database), mock.DemoProfile, nil
	case cfg.URL != "":
		database, err = configureDatabase(cfg)
		if err != nil {
			return nil, "", err
		}
		applog.Info(ctx, "database configured")
		return store.NewDB(database), "", nil
	default:
		applog.Warn(ctx, "no database configured, profiles are kept in memory")
		return store.NewMemory(), "", nil
	}
}
