package restapi

import (
	"net/http"
	"time"

	"hustbus.org/routeplanner/internal/metrics"
)

// journeyHandler returns the engine's itinerary FeatureCollection unchanged.
func (api *RestAPI) journeyHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := api.parseRouteQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	it, err := api.Planner.Journey(r.Context(), q)
	if err != nil {
		api.Metrics.ObserveSearch(endpointJourney, metrics.OutcomeError, time.Since(start))
		api.searchFailedResponse(w, err)
		return
	}

	outcome := metrics.OutcomeFound
	if it == nil || len(it.Features) == 0 {
		outcome = metrics.OutcomeNotFound
	}
	api.Metrics.ObserveSearch(endpointJourney, outcome, time.Since(start))
	api.sendResponse(w, r, it)
}
