package planner

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/semaphore"

	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/logging"
	"hustbus.org/routeplanner/internal/models"
	"hustbus.org/routeplanner/internal/utils"
)

// DefaultMaxTransfers is the transfer ceiling used when a request does not name one.
const DefaultMaxTransfers = 3

// Engine is the routing engine the planner drives. *engine.Model implements it.
type Engine interface {
	ResolvePoint(lat, lon float64) (*engine.Point, error)
	FindRoute(ctx context.Context, origin, destination *engine.Point, departure, maxTransfers int) (*engine.RouteSummary, error)
	DetailedJourney(ctx context.Context, origin, destination *engine.Point, departure, maxTransfers int) (*engine.Itinerary, error)
}

// Query is one validated route request.
type Query struct {
	From         models.Coordinate
	To           models.Coordinate
	Departure    int
	MaxTransfers int
}

// RouteResult is a journey found under a transfer budget.
type RouteResult struct {
	Budget   int
	Summary  engine.RouteSummary
	Segments []models.Segment
}

// MultiResult holds the accepted routes of a multi-route search and the engine failures it absorbed.
type MultiResult struct {
	Routes      []RouteResult
	Diagnostics []string
}

// Planner runs route searches against an engine, admitting a bounded number at a time.
type Planner struct {
	engine  Engine
	logger  *slog.Logger
	slots   *semaphore.Weighted
	timeout time.Duration
}

type Option func(*Planner)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxConcurrentSearches bounds how many searches run at once. Values below 1 keep the default of GOMAXPROCS.
func WithMaxConcurrentSearches(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.slots = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithSearchTimeout cancels searches that run longer than d. Zero disables the limit.
func WithSearchTimeout(d time.Duration) Option {
	return func(p *Planner) {
		p.timeout = d
	}
}

func New(e Engine, opts ...Option) *Planner {
	p := &Planner{
		engine: e,
		logger: slog.Default(),
		slots:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Single issues one search at q.MaxTransfers. A nil result with a nil error means no journey
// exists. Engine failures are returned as *EngineError.
func (p *Planner) Single(ctx context.Context, q Query) (*RouteResult, error) {
	summary, itinerary, err := p.search(ctx, q)
	if err != nil {
		p.logFailure("single route search failed", q, err)
		return nil, &EngineError{Err: err}
	}
	if summary == nil {
		return nil, nil
	}

	return &RouteResult{
		Budget:   q.MaxTransfers,
		Summary:  *summary,
		Segments: ExtractSegments(itinerary, q.Departure),
	}, nil
}

// Multi issues one search at q.MaxTransfers and keeps its result only when it rides a vehicle.
// Engine failures, including unresolvable points, become diagnostics.
func (p *Planner) Multi(ctx context.Context, q Query) MultiResult {
	var out MultiResult

	summary, itinerary, err := p.search(ctx, q)
	if err != nil {
		p.logFailure("multi route search failed", q, err)
		out.Diagnostics = append(out.Diagnostics, err.Error())
		return out
	}

	if summary != nil && summary.UsedTransit {
		out.Routes = append(out.Routes, RouteResult{
			Budget:   q.MaxTransfers,
			Summary:  *summary,
			Segments: ExtractSegments(itinerary, q.Departure),
		})
	}
	return out
}

// Journey returns the engine's detailed itinerary for q.
func (p *Planner) Journey(ctx context.Context, q Query) (*engine.Itinerary, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, &EngineError{Err: err}
	}
	defer p.slots.Release(1)

	origin, destination, err := p.resolve(q)
	if err != nil {
		p.logFailure("journey search failed", q, err)
		return nil, &EngineError{Err: err}
	}

	it, err := p.engine.DetailedJourney(ctx, origin, destination, q.Departure, q.MaxTransfers)
	if err != nil {
		p.logFailure("journey search failed", q, err)
		return nil, &EngineError{Err: err}
	}
	return it, nil
}

func (p *Planner) search(ctx context.Context, q Query) (*engine.RouteSummary, *engine.Itinerary, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, nil, err
	}
	defer p.slots.Release(1)

	origin, destination, err := p.resolve(q)
	if err != nil {
		return nil, nil, err
	}

	var (
		summary   *engine.RouteSummary
		itinerary *engine.Itinerary
	)
	g := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	g.Go(func(ctx context.Context) error {
		var err error
		summary, err = p.engine.FindRoute(ctx, origin, destination, q.Departure, q.MaxTransfers)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		itinerary, err = p.engine.DetailedJourney(ctx, origin, destination, q.Departure, q.MaxTransfers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return summary, itinerary, nil
}

func (p *Planner) resolve(q Query) (*engine.Point, *engine.Point, error) {
	origin, err := p.engine.ResolvePoint(q.From.Lat, q.From.Lon)
	if err != nil {
		return nil, nil, err
	}
	destination, err := p.engine.ResolvePoint(q.To.Lat, q.To.Lon)
	if err != nil {
		return nil, nil, err
	}
	return origin, destination, nil
}

func (p *Planner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

func (p *Planner) logFailure(message string, q Query, err error) {
	logging.LogError(p.logger, message, err,
		logging.CoordinateAttr("from", q.From.Lat, q.From.Lon),
		logging.CoordinateAttr("to", q.To.Lat, q.To.Lon),
		slog.String("departure", utils.FormatClockTime(q.Departure)),
		slog.Int("max_transfers", q.MaxTransfers))
}
