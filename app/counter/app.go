package counter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/asyncware"
	"github.com/dmitrymomot/asyncware/core/health"
	"github.com/dmitrymomot/asyncware/core/logger"
	"github.com/dmitrymomot/asyncware/core/server"
	"github.com/dmitrymomot/asyncware/httpadapter"
	"github.com/dmitrymomot/asyncware/integration/database/redis"
	"github.com/dmitrymomot/asyncware/middleware"
)

type App struct {
	config Config
	redis  goredis.UniversalClient
	health func(context.Context) error
	server *server.Server
	logger *slog.Logger
}

type AppOption func(*App) error

func NewApp(cfg Config, client goredis.UniversalClient, opts ...AppOption) (*App, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	app := &App{
		config: cfg,
		redis:  client,
		health: redis.Healthcheck(client),
		logger: logger.New(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

// Handler returns the routed http.Handler of the service.
func (a *App) Handler() http.Handler {
	opts := []httpadapter.Option{
		httpadapter.WithLogger(a.logger),
		httpadapter.WithAdapterOptions(asyncware.WithLogger(a.logger)),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /hits/{name}", httpadapter.MustEndpoint(a.hits, opts...))
	mux.Handle("GET /healthz", httpadapter.MustEndpoint(a.healthz, opts...))
	mux.Handle("GET /panic", httpadapter.MustEndpoint(a.crash, opts...))
	mux.Handle("GET /health/live", httpadapter.MustEndpoint(health.Liveness, opts...))
	mux.Handle("GET /health/ready", httpadapter.MustEndpoint(health.Readiness(a.logger, a.health), opts...))

	requestID := httpadapter.MustMiddleware(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		UseExisting: true,
	}), opts...)

	return requestID(mux)
}

// Run serves the application until ctx is canceled. Compatible with errgroup.
func (a *App) Run(ctx context.Context) func() error {
	return a.server.Run(ctx, a.Handler())
}
