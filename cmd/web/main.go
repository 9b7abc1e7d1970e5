package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/akorpela/liftlog/internal/envstruct"
	"github.com/akorpela/liftlog/internal/errors"
	"github.com/akorpela/liftlog/internal/logging"
	"github.com/akorpela/liftlog/internal/pprofserver"
	"github.com/akorpela/liftlog/internal/sqlite"
	"github.com/akorpela/liftlog/internal/workout"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	workoutService *workout.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"LIFTLOG_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"LIFTLOG_SQLITE_URL" envDefault:"./liftlog.sqlite3"`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"LIFTLOG_PPROF_ADDR" envDefault:""`
	// OpenAIAPIKey enables AI-generated exercise descriptions when set.
	OpenAIAPIKey string `env:"LIFTLOG_OPENAI_API_KEY" envDefault:""`
	// SessionLifetimeHours is how long a login session stays valid.
	SessionLifetimeHours int `env:"LIFTLOG_SESSION_LIFETIME_HOURS" envDefault:"12"`
	// SecureCookie should only be disabled for local development over plain HTTP.
	SecureCookie bool `env:"LIFTLOG_SECURE_COOKIE" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db, cfg),
		workoutService: workout.NewService(db, logger, cfg.OpenAIAPIKey),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database, cfg config) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = time.Duration(cfg.SessionLifetimeHours) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = cfg.SecureCookie
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
