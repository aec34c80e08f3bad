package restapi

import (
	"net/http"
	"time"

	"hustbus.org/routeplanner/internal/metrics"
	"hustbus.org/routeplanner/internal/planner"
)

// findRoutesHandler answers with the ranked route list. Engine failures are reported inside
// the not-found body and never change the status code.
func (api *RestAPI) findRoutesHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := api.parseRouteQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := api.Planner.Multi(r.Context(), q)

	if len(result.Routes) == 0 {
		outcome := metrics.OutcomeNotFound
		if len(result.Diagnostics) > 0 {
			outcome = metrics.OutcomeError
		}
		api.Metrics.ObserveSearch(endpointFindRoutes, outcome, time.Since(start))
		api.sendResponse(w, r, planner.NotFound(q, result.Diagnostics))
		return
	}

	api.Metrics.ObserveSearch(endpointFindRoutes, metrics.OutcomeFound, time.Since(start))
	api.sendResponse(w, r, planner.AssembleMulti(q, result.Routes))
}
