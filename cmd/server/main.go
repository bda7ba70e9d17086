package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/jackc/pgx/v5/pgxpool"

	migratefs "github.com/braincarehq/backend/db"
	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/config"
	"github.com/braincarehq/backend/internal/db"
	"github.com/braincarehq/backend/internal/handlers"
	"github.com/braincarehq/backend/internal/inference"
	"github.com/braincarehq/backend/internal/journal"
	"github.com/braincarehq/backend/internal/logger"
	"github.com/braincarehq/backend/internal/mailer"
	"github.com/braincarehq/backend/internal/metrics"
	"github.com/braincarehq/backend/internal/server"
	"github.com/braincarehq/backend/internal/users"
	"github.com/braincarehq/backend/internal/version"
)

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(os.Args[2:])
		return
	}

	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,

			provideDBConn,

			fx.Annotate(users.NewPostgresRepository, fx.As(new(users.Repository))),
			fx.Annotate(metrics.NewPostgresRepository, fx.As(new(metrics.Repository))),
			fx.Annotate(journal.NewPostgresRepository, fx.As(new(journal.Repository))),

			users.NewService,
			metrics.NewService,
			journal.NewService,
			provideResolver,
			provideMailer,
			provideInferenceClient,
			provideInferenceService,

			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewAuthHandler),
			provideServerHandler(handlers.NewProfileHandler),
			provideServerHandler(handlers.NewMetricsHandler),
			provideServerHandler(handlers.NewJournalHandler),
			provideServerHandler(handlers.NewAnalysisHandler),

			provideServer,
		),
		fx.Invoke(
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func provideResolver(usersService *users.Service) *auth.Resolver {
	return auth.NewResolver(users.NewLookup(usersService))
}

func provideMailer(log *slog.Logger, cfg config.Config) (*mailer.Mailer, error) {
	return mailer.New(log, cfg.SMTP)
}

func provideInferenceClient(log *slog.Logger, cfg config.Config) *inference.Client {
	timeout := time.Duration(cfg.Inference.TimeoutSeconds) * time.Second
	return inference.NewClient(log, cfg.Inference.BaseURL, timeout, cfg.Inference.RequestsPerSecond)
}

func provideInferenceService(log *slog.Logger, client *inference.Client, usersService *users.Service, metricsService *metrics.Service) *inference.Service {
	return inference.NewService(log, client, usersService, metricsService)
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	errorHandler := handlers.HTTPErrorHandler(params.Logger)
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.Config.Auth.JWTSecret, errorHandler, params.ServerHandlers...)
}

func startServer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	srv *server.Server,
	shutdowner fx.Shutdowner,
) {
	fmt.Printf("Starting BrainCare backend %s\n", version.GetInfo())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil { // block until server is stopped
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}

func runMigrate(args []string) {
	cfg, err := provideConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	command := "up"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	migrations, err := fs.Sub(migratefs.MigrationsFS, "migrations")
	if err != nil {
		logger.L.Error("migrations fs", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.RunMigrate(logger.L, cfg.Postgres, migrations, command, args); err != nil {
		logger.L.Error("migrate failed", slog.Any("error", err))
		os.Exit(1)
	}
}
