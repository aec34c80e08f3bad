package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"hustbus.org/routeplanner/internal/app"
	"hustbus.org/routeplanner/internal/appconf"
	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/gtfs"
	"hustbus.org/routeplanner/internal/logging"
	"hustbus.org/routeplanner/internal/metrics"
	"hustbus.org/routeplanner/internal/planner"
)

const (
	scenarioQuery = "lat_from=21.0278&lon_from=105.8342&lat_to=21.0388&lon_to=105.7880&time=08:00:00"
	walkingQuery  = "lat_from=21.0278&lon_from=105.8342&lat_to=21.0278&lon_to=105.8390&time=08:00:00"
)

func testConfig() appconf.Config {
	return appconf.Config{
		Port:    4000,
		Env:     appconf.EnvFlagToEnvironment("test"),
		EnvName: "test",
	}
}

// createTestApi creates a RestAPI over the sample transit model without rate limiting.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithConfig(t, testConfig())
}

func createTestApiWithConfig(t *testing.T, cfg appconf.Config) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	application := app.New(cfg, gtfs.Config{Timezone: gtfs.DefaultTimezone}, logger, engine.NewSampleModel(t), metrics.NewCollector())

	return &RestAPI{Application: application}
}

// createTestApiWithEngine routes searches to e instead of the sample model.
func createTestApiWithEngine(t *testing.T, e planner.Engine) *RestAPI {
	t.Helper()

	api := createTestApi(t)
	api.Planner = planner.New(e, planner.WithLogger(api.Logger))
	return api
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server
}

// serveApiAndRetrieveEndpoint runs endpoint through the full middleware chain and returns the
// response with its body read.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeObject(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

func decodeArray(t *testing.T, body []byte) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

// stubEngine answers every search with fixed values.
type stubEngine struct {
	summary   *engine.RouteSummary
	itinerary *engine.Itinerary
	err       error
}

func (s *stubEngine) ResolvePoint(lat, lon float64) (*engine.Point, error) {
	return &engine.Point{Lat: lat, Lon: lon}, nil
}

func (s *stubEngine) FindRoute(context.Context, *engine.Point, *engine.Point, int, int) (*engine.RouteSummary, error) {
	return s.summary, s.err
}

func (s *stubEngine) DetailedJourney(context.Context, *engine.Point, *engine.Point, int, int) (*engine.Itinerary, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.itinerary == nil {
		return &engine.Itinerary{Type: "FeatureCollection", Features: []engine.Feature{}}, nil
	}
	return s.itinerary, nil
}

func leg(props map[string]any) engine.Feature {
	return engine.Feature{Type: "Feature", Geometry: engine.Geometry{Type: "LineString"}, Properties: props}
}

// thirtyMinuteJourney rides the 34 and the 55 with one transfer, arriving 1800 seconds after 08:00.
func thirtyMinuteJourney() *stubEngine {
	return &stubEngine{
		summary: &engine.RouteSummary{
			TravelTime:  1800,
			WalkingTime: 300,
			TransitTime: 1320,
			Transfers:   1,
			UsedTransit: true,
		},
		itinerary: &engine.Itinerary{
			Type: "FeatureCollection",
			Features: []engine.Feature{
				leg(map[string]any{"leg_type": "walking", "duration": 120, "departure_time": 28800, "arrival_time": 28920}),
				leg(map[string]any{
					"leg_type": "transit", "route_id": "34_1", "trip_id": "T34a", "duration": 840,
					"from_name": "Hoan Kiem", "to_name": "Kim Ma", "departure_time": 28920, "arrival_time": 29760,
				}),
				leg(map[string]any{"leg_type": "transfer", "duration": 60, "departure_time": 29760, "arrival_time": 29820}),
				leg(map[string]any{
					"leg_type": "transit", "route_id": "55_2", "trip_id": "T55b", "duration": 480,
					"from_name": "Kim Ma B", "to_name": "Cau Giay", "departure_time": 29940, "arrival_time": 30420,
				}),
				leg(map[string]any{"leg_type": "walking", "duration": 180, "departure_time": 30420, "arrival_time": 30600}),
			},
		},
	}
}
