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
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"hustbus.org/routeplanner/internal/app"
	"hustbus.org/routeplanner/internal/appconf"
	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/gtfs"
	"hustbus.org/routeplanner/internal/logging"
	"hustbus.org/routeplanner/internal/metrics"
	"hustbus.org/routeplanner/internal/restapi"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	if err := newCLIApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLIApp() *cli.App {
	defaults := appconf.DefaultFile()

	return &cli.App{
		Name:  "routeplanner",
		Usage: "HTTP route search over GTFS bus schedules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file; flags override its values",
				EnvVars: []string{"HUSTBUS_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   defaults.Server.Port,
				Usage:   "API server port",
				EnvVars: []string{"HUSTBUS_PORT"},
			},
			&cli.StringFlag{
				Name:    "env",
				Value:   defaults.Server.EnvName,
				Usage:   "Environment (development|test|production)",
				EnvVars: []string{"HUSTBUS_ENV"},
			},
			&cli.StringSliceFlag{
				Name:    "gtfs",
				Usage:   "GTFS feed: zip file, unzipped directory or http(s) URL (repeatable)",
				EnvVars: []string{"HUSTBUS_GTFS_SOURCES"},
			},
			&cli.StringFlag{
				Name:    "service-date",
				Usage:   "Service date as YYYY-MM-DD (default: today in --timezone)",
				EnvVars: []string{"HUSTBUS_SERVICE_DATE"},
			},
			&cli.StringFlag{
				Name:    "timezone",
				Value:   defaults.GTFS.Timezone,
				Usage:   "IANA timezone the service date is resolved in",
				EnvVars: []string{"HUSTBUS_TIMEZONE"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Log per-feed statistics at startup",
				EnvVars: []string{"HUSTBUS_VERBOSE"},
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Value:   defaults.Server.RateLimit,
				Usage:   "Requests per second allowed per client (0 disables limiting)",
				EnvVars: []string{"HUSTBUS_RATE_LIMIT"},
			},
			&cli.BoolFlag{
				Name:    "trust-proxy",
				Usage:   "Identify rate-limited clients by X-Forwarded-For (only behind a proxy that sets it)",
				EnvVars: []string{"HUSTBUS_TRUST_PROXY"},
			},
			&cli.DurationFlag{
				Name:    "search-timeout",
				Usage:   "Abort route searches running longer than this (0 = no limit)",
				EnvVars: []string{"HUSTBUS_SEARCH_TIMEOUT"},
			},
			&cli.IntFlag{
				Name:    "max-concurrent-searches",
				Usage:   "Route searches allowed to run at once (0 = GOMAXPROCS)",
				EnvVars: []string{"HUSTBUS_MAX_CONCURRENT_SEARCHES"},
			},
			&cli.Float64Flag{
				Name:    "walking-speed",
				Value:   defaults.Engine.WalkingSpeed,
				Usage:   "Walking speed in meters per second",
				EnvVars: []string{"HUSTBUS_WALKING_SPEED"},
			},
			&cli.Float64Flag{
				Name:    "max-access-distance",
				Value:   defaults.Engine.MaxAccessDistance,
				Usage:   "Longest walk in meters between a query point and a stop",
				EnvVars: []string{"HUSTBUS_MAX_ACCESS_DISTANCE"},
			},
			&cli.Float64Flag{
				Name:    "max-transfer-distance",
				Value:   defaults.Engine.MaxTransferDistance,
				Usage:   "Longest walk in meters between two stops when changing buses",
				EnvVars: []string{"HUSTBUS_MAX_TRANSFER_DISTANCE"},
			},
			&cli.Float64Flag{
				Name:    "max-walk-distance",
				Value:   defaults.Engine.MaxWalkDistance,
				Usage:   "Longest walking-only journey in meters",
				EnvVars: []string{"HUSTBUS_MAX_WALK_DISTANCE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug|info|warn|error)",
				EnvVars: []string{"HUSTBUS_LOG_LEVEL"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := buildConfig(c)
			if err != nil {
				return err
			}

			level, err := logging.ParseLevel(cfg.Server.LogLevel)
			if err != nil {
				return err
			}
			logger := logging.NewStructuredLogger(os.Stdout, level)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, logger)
		},
	}
}

// buildConfig layers the config file over the defaults, then every explicitly set flag or
// environment variable over the file.
func buildConfig(c *cli.Context) (appconf.File, error) {
	cfg := appconf.DefaultFile()
	if path := c.String("config"); path != "" {
		loaded, err := appconf.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("env") {
		cfg.Server.EnvName = c.String("env")
		cfg.Server.Env = appconf.EnvFlagToEnvironment(cfg.Server.EnvName)
	}
	if c.IsSet("rate-limit") {
		cfg.Server.RateLimit = c.Int("rate-limit")
	}
	if c.IsSet("trust-proxy") {
		cfg.Server.TrustProxy = c.Bool("trust-proxy")
	}
	if c.IsSet("search-timeout") {
		cfg.Server.SearchTimeout = c.Duration("search-timeout")
	}
	if c.IsSet("max-concurrent-searches") {
		cfg.Server.MaxConcurrentSearches = c.Int("max-concurrent-searches")
	}
	if c.IsSet("log-level") {
		cfg.Server.LogLevel = c.String("log-level")
	}

	if c.IsSet("gtfs") {
		cfg.GTFS.Sources = c.StringSlice("gtfs")
	}
	if c.IsSet("service-date") {
		cfg.GTFS.ServiceDate = c.String("service-date")
	}
	if c.IsSet("timezone") {
		cfg.GTFS.Timezone = c.String("timezone")
	}
	if c.IsSet("verbose") {
		cfg.GTFS.Verbose = c.Bool("verbose")
	}

	if c.IsSet("walking-speed") {
		cfg.Engine.WalkingSpeed = c.Float64("walking-speed")
	}
	if c.IsSet("max-access-distance") {
		cfg.Engine.MaxAccessDistance = c.Float64("max-access-distance")
	}
	if c.IsSet("max-transfer-distance") {
		cfg.Engine.MaxTransferDistance = c.Float64("max-transfer-distance")
	}
	if c.IsSet("max-walk-distance") {
		cfg.Engine.MaxWalkDistance = c.Float64("max-walk-distance")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildApplication loads the feeds and builds the transit model. Any failure here is fatal:
// the server never starts without a model.
func buildApplication(ctx context.Context, cfg appconf.File, logger *slog.Logger) (*app.Application, error) {
	manager, err := gtfs.InitGTFSManager(ctx, cfg.GTFS, logger)
	if err != nil {
		return nil, fmt.Errorf("loading GTFS feeds: %w", err)
	}
	manager.LogStatistics(logger)

	start := time.Now()
	model, err := engine.BuildModel(manager.Feeds(), manager.ServiceDate(), cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("building transit model: %w", err)
	}

	stats := model.Stats()
	logging.LogOperation(logger, "transit_model_built",
		slog.String("service_date", stats.ServiceDate),
		slog.Int("stops", stats.Stops),
		slog.Int("patterns", stats.Patterns),
		slog.Int("trips", stats.Trips),
		slog.Int("footpaths", stats.Footpaths),
		slog.Duration("duration", time.Since(start)))

	return app.New(cfg.Server, cfg.GTFS, logger, model, metrics.NewCollector()), nil
}

func run(ctx context.Context, cfg appconf.File, logger *slog.Logger) error {
	application, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}

	api := restapi.NewRestAPI(application)
	defer api.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(cfg.Server.SearchTimeout),
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, logger, cfg.Server.EnvName)
}

// writeTimeout leaves room for a full search plus encoding.
func writeTimeout(searchTimeout time.Duration) time.Duration {
	if searchTimeout <= 0 {
		return 60 * time.Second
	}
	return searchTimeout + 10*time.Second
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, env string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
