package app

import (
	"log/slog"

	"hustbus.org/routeplanner/internal/appconf"
	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/gtfs"
	"hustbus.org/routeplanner/internal/metrics"
	"hustbus.org/routeplanner/internal/planner"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. The transit model is built once at startup and never mutated.
type Application struct {
	Config     appconf.Config
	GtfsConfig gtfs.Config
	Logger     *slog.Logger
	Model      *engine.Model
	Planner    *planner.Planner
	Metrics    *metrics.Collector
}

// New wires a planner over model using the server settings in cfg.
func New(cfg appconf.Config, gtfsCfg gtfs.Config, logger *slog.Logger, model *engine.Model, collector *metrics.Collector) *Application {
	p := planner.New(model,
		planner.WithLogger(logger),
		planner.WithMaxConcurrentSearches(cfg.MaxConcurrentSearches),
		planner.WithSearchTimeout(cfg.SearchTimeout))

	collector.SetModelStats(model.Stats())

	return &Application{
		Config:     cfg,
		GtfsConfig: gtfsCfg,
		Logger:     logger,
		Model:      model,
		Planner:    p,
		Metrics:    collector,
	}
}
