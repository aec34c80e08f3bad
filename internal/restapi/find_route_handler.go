package restapi

import (
	"net/http"
	"time"

	"hustbus.org/routeplanner/internal/metrics"
	"hustbus.org/routeplanner/internal/planner"
)

const (
	endpointFindRoute  = "find_route"
	endpointFindRoutes = "find_routes"
	endpointJourney    = "journey"
)

// findRouteHandler answers with the single best journey. Engine failures are fatal here.
func (api *RestAPI) findRouteHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := api.parseRouteQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := api.Planner.Single(r.Context(), q)
	if err != nil {
		api.Metrics.ObserveSearch(endpointFindRoute, metrics.OutcomeError, time.Since(start))
		api.searchFailedResponse(w, err)
		return
	}

	if result == nil {
		api.Metrics.ObserveSearch(endpointFindRoute, metrics.OutcomeNotFound, time.Since(start))
		api.sendResponse(w, r, planner.NotFound(q, nil))
		return
	}

	api.Metrics.ObserveSearch(endpointFindRoute, metrics.OutcomeFound, time.Since(start))
	api.sendResponse(w, r, planner.AssembleSingle(q, result))
}
