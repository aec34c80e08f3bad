package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamespfennell/gtfs"

	"hustbus.org/routeplanner/internal/logging"
)

// Manager holds the parsed schedule feeds and the service date the transit model is built for.
type Manager struct {
	config      Config
	feeds       []*gtfs.Static
	location    *time.Location
	serviceDate time.Time
	lastUpdated time.Time
}

// InitGTFSManager loads every configured feed and resolves the service date.
func InitGTFSManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if len(config.Sources) == 0 {
		return nil, fmt.Errorf("no GTFS sources configured")
	}

	loc, err := config.location()
	if err != nil {
		return nil, err
	}

	serviceDate, err := ResolveServiceDate(config.ServiceDate, loc, time.Now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	feeds, err := LoadFeeds(ctx, config.Sources, logger)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		config:      config,
		feeds:       feeds,
		location:    loc,
		serviceDate: serviceDate,
		lastUpdated: time.Now(),
	}

	logging.LogOperation(logger, "gtfs_feeds_loaded",
		slog.Int("feeds", len(feeds)),
		slog.String("service_date", serviceDate.Format("2006-01-02")),
		slog.Duration("duration", time.Since(start)))

	return manager, nil
}

func (manager *Manager) Feeds() []*gtfs.Static {
	return manager.feeds
}

func (manager *Manager) ServiceDate() time.Time {
	return manager.serviceDate
}

func (manager *Manager) Location() *time.Location {
	return manager.location
}

// LogStatistics logs per-feed entity counts. Only verbose configurations log anything.
func (manager *Manager) LogStatistics(logger *slog.Logger) {
	if !manager.config.Verbose {
		return
	}
	for i, feed := range manager.feeds {
		logging.LogOperation(logger, "gtfs_feed_statistics",
			slog.String("source", manager.config.Sources[i]),
			slog.Time("last_updated", manager.lastUpdated),
			slog.Int("agencies", len(feed.Agencies)),
			slog.Int("routes", len(feed.Routes)),
			slog.Int("stops", len(feed.Stops)),
			slog.Int("trips", len(feed.Trips)),
			slog.Int("services", len(feed.Services)),
			slog.Int("warnings", len(feed.Warnings)))
	}
}
