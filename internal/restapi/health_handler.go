package restapi

import (
	"net/http"

	"hustbus.org/routeplanner/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := api.Model.Stats()
	api.sendResponse(w, r, models.HealthResponse{
		Status:      "ok",
		ServiceDate: stats.ServiceDate,
		Stops:       stats.Stops,
		Patterns:    stats.Patterns,
		Trips:       stats.Trips,
	})
}
