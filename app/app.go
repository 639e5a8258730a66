package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pipeline/core/binder"
	"github.com/dmitrymomot/pipeline/core/config"
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/logger"
	"github.com/dmitrymomot/pipeline/core/pipeline"
	"github.com/dmitrymomot/pipeline/core/router"
	"github.com/dmitrymomot/pipeline/core/server"
)

// App ties one route table, one middleware pipeline and one server together.
type App struct {
	config   Config
	logger   *slog.Logger
	routes   *router.Table
	pipeline *pipeline.Builder
	server   *server.Server
}

// Option configures an App.
type Option func(*App) error

// New creates an App from the environment configuration.
func New(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig creates an App from an explicit configuration.
// Components not supplied through options are built from cfg.
func NewWithConfig(cfg Config, opts ...Option) (*App, error) {
	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	if app.routes == nil {
		app.routes = router.NewTable(router.WithLogger(app.logger))
	}

	if app.pipeline == nil {
		app.pipeline = pipeline.New()
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func newLogger(cfg Config) *slog.Logger {
	mode := logger.WithDevelopment(cfg.AppName)
	if cfg.IsProduction() {
		mode = logger.WithProduction(cfg.AppName)
	}
	return logger.New(mode, logger.WithLevelString(cfg.LogLevel), logger.WithOutput(os.Stdout))
}

// WithLogger overrides the logger built from configuration.
func WithLogger(log *slog.Logger) Option {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithRouteTable supplies a pre-populated route table.
func WithRouteTable(t *router.Table) Option {
	return func(app *App) error {
		if t == nil {
			return errors.New("route table cannot be nil")
		}
		app.routes = t
		return nil
	}
}

// WithServer overrides the server built from configuration.
func WithServer(s *server.Server) Option {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Routes returns the route table.
func (a *App) Routes() *router.Table { return a.routes }

// Server returns the underlying server.
func (a *App) Server() *server.Server { return a.server }

// Map registers a bound handler for an exact route.
func (a *App) Map(route string, h binder.Handler) error {
	return a.routes.Map(route, h)
}

// MustMap is like Map but panics on error.
func (a *App) MustMap(route string, h binder.Handler) {
	a.routes.MustMap(route, h)
}

// MapFunc registers a plain request handler for an exact route.
func (a *App) MapFunc(route string, fn handler.HandlerFunc) error {
	return a.routes.MapFunc(route, fn)
}

// Use appends middleware to the pipeline. Order of registration is order of entry.
func (a *App) Use(middlewares ...handler.Middleware) {
	a.pipeline.Use(middlewares...)
}

// UseFunc appends an inline middleware to the pipeline.
func (a *App) UseFunc(fn func(ctx *handler.Context, next handler.HandlerFunc) error) {
	a.pipeline.UseFunc(fn)
}

// UseRouting appends the stage that resolves the request path against the route table.
func (a *App) UseRouting() {
	a.pipeline.Use(router.Routing(a.routes))
}

// UseEndpoints appends the terminal stage that runs the resolved endpoint or answers 404.
func (a *App) UseEndpoints() {
	a.pipeline.Use(router.Endpoints())
}

// Handler builds the pipeline. Middleware cannot be added afterwards.
func (a *App) Handler() handler.HandlerFunc {
	return a.pipeline.Build()
}

// Run serves requests until ctx is canceled, then shuts the server down gracefully.
// Workers run alongside the server; the first failure stops everything.
func (a *App) Run(ctx context.Context, workers ...func(context.Context) error) error {
	h := a.Handler()

	a.logger.InfoContext(ctx, "starting application",
		logger.Component("app"),
		slog.String("app", a.config.AppName),
		slog.String("env", a.config.Env),
		slog.Int("routes", a.routes.Len()),
		slog.Int("middlewares", a.pipeline.Len()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, h))
	for _, w := range workers {
		g.Go(func() error { return w(gctx) })
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("application stopped with error", logger.Component("app"), logger.Error(err))
		return err
	}

	a.logger.Info("application stopped", logger.Component("app"))
	return nil
}
