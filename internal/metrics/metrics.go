package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hustbus.org/routeplanner/internal/engine"
)

// Search outcomes recorded on hustbus_route_searches_total.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Collector owns a private registry. A nil *Collector records nothing.
type Collector struct {
	reg *prometheus.Registry

	Searches       *prometheus.CounterVec   // endpoint, outcome
	SearchDuration *prometheus.HistogramVec // endpoint
	EngineErrors   *prometheus.CounterVec   // endpoint

	ModelStops    prometheus.Gauge
	ModelPatterns prometheus.Gauge
	ModelTrips    prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hustbus_route_searches_total",
			Help: "Route searches by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hustbus_route_search_duration_seconds",
			Help:    "Time spent answering a route search.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"endpoint"}),
		EngineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hustbus_engine_errors_total",
			Help: "Routing engine failures by endpoint.",
		}, []string{"endpoint"}),
		ModelStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hustbus_model_stops",
			Help: "Stops in the loaded transit model.",
		}),
		ModelPatterns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hustbus_model_patterns",
			Help: "Route patterns in the loaded transit model.",
		}),
		ModelTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hustbus_model_trips",
			Help: "Trips running on the model's service date.",
		}),
	}

	reg.MustRegister(
		c.Searches, c.SearchDuration, c.EngineErrors,
		c.ModelStops, c.ModelPatterns, c.ModelTrips,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveSearch records one finished search.
func (c *Collector) ObserveSearch(endpoint, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Searches.WithLabelValues(endpoint, outcome).Inc()
	c.SearchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if outcome == OutcomeError {
		c.EngineErrors.WithLabelValues(endpoint).Inc()
	}
}

// SetModelStats publishes the size of the loaded model.
func (c *Collector) SetModelStats(stats engine.Stats) {
	if c == nil {
		return
	}
	c.ModelStops.Set(float64(stats.Stops))
	c.ModelPatterns.Set(float64(stats.Patterns))
	c.ModelTrips.Set(float64(stats.Trips))
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
