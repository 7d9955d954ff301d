package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"

	clientdist "github.com/notekeeper/notesweb/client/dist"
	"github.com/notekeeper/notesweb/internal/assets"
	"github.com/notekeeper/notesweb/internal/config"
	"github.com/notekeeper/notesweb/internal/errors"
	"github.com/notekeeper/notesweb/internal/views"
	"github.com/notekeeper/notesweb/pkg/middleware"
	"github.com/notekeeper/notesweb/pkg/router"
	"github.com/notekeeper/notesweb/pkg/server"
)

// Options carries dependencies that are normally built from the config.
// Zero values select the defaults.
type Options struct {
	Logger *slog.Logger

	// Registry receives the metrics. Default: a new registry with the Go and
	// process collectors.
	Registry *prometheus.Registry

	// TracerProvider is used when tracing is enabled. Default: the global
	// provider.
	TracerProvider trace.TracerProvider

	// S3Client replaces the client built from the assets.s3 settings.
	S3Client assets.GetObjectAPI

	// Routes replaces the built-in route table.
	Routes []router.Route
}

// App is a configured notes web client.
type App struct {
	Config   *config.Config
	Resolver *router.Resolver
	Renderer *views.Renderer
	Metrics  *middleware.Metrics
	Server   *server.Server

	logger *slog.Logger
}

// New wires the route table, views, assets, metrics and tracing into a
// server.
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := views.Default()
	routes := opts.Routes
	if routes == nil {
		routes = Routes()
	}
	resolver, err := NewResolver(cfg.Base, routes, registry)
	if err != nil {
		return nil, err
	}
	renderer := views.NewRenderer(registry, resolver, views.WithClientVersion(clientdist.Version))

	a := &App{
		Config:   cfg,
		Resolver: resolver,
		Renderer: renderer,
		logger:   logger.With("component", "app"),
	}

	var navMiddleware []router.Middleware
	srvCfg := server.Config{
		Address:       cfg.Address,
		Base:          cfg.Base,
		Resolver:      resolver,
		Renderer:      renderer,
		Assets:        a.assetsHandler(opts.S3Client),
		ClientJS:      clientdist.NavJS,
		ClientVersion: clientdist.Version,
		HistoryMode:   server.HistoryMode(cfg.History),
		Logger:        logger,
	}

	if cfg.Metrics.Enabled {
		reg := opts.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		a.Metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		navMiddleware = append(navMiddleware, a.Metrics.Prometheus())
		srvCfg.Metrics = a.Metrics
		srvCfg.MetricsPath = cfg.Metrics.Path
		srvCfg.Gatherer = reg
	}

	if cfg.Tracing.Enabled {
		otelOpts := []middleware.OTelOption{middleware.WithTracerName(cfg.Tracing.TracerName)}
		if opts.TracerProvider != nil {
			otelOpts = append(otelOpts, middleware.WithTracerProvider(opts.TracerProvider))
		}
		navMiddleware = append(navMiddleware, middleware.OpenTelemetry(otelOpts...))
	}
	srvCfg.NavMiddleware = navMiddleware

	srv, err := server.New(srvCfg)
	if err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	a.Server = srv
	return a, nil
}

// assetsHandler serves assets from S3 when a bucket is configured, and from
// the local directory otherwise.
func (a *App) assetsHandler(client assets.GetObjectAPI) http.Handler {
	cfg := a.Config
	if cfg.UseS3() {
		if client == nil {
			client = assets.NewS3Client(assets.S3Config{
				Region:   cfg.Assets.S3.Region,
				Endpoint: cfg.Assets.S3.Endpoint,
			})
		}
		a.logger.Info("serving assets from s3", "bucket", cfg.Assets.S3.Bucket, "prefix", cfg.Assets.S3.Prefix)
		return assets.Handler(assets.NewS3Source(client, cfg.Assets.S3.Bucket, cfg.Assets.S3.Prefix), assets.CacheProduction)
	}
	a.logger.Info("serving assets from directory", "dir", cfg.AssetsPath())
	return assets.Handler(assets.NewDirSource(cfg.AssetsPath()), assets.CacheProduction)
}

// Run serves until ctx is done or a shutdown signal arrives.
func (a *App) Run(ctx context.Context) error {
	if err := a.Server.Run(ctx); err != nil {
		return errors.New("E301").Wrap(err)
	}
	return nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (a *App) Handler() http.Handler {
	return a.Server.Handler()
}
