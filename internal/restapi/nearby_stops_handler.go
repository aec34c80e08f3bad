package restapi

import (
	"net/http"

	"hustbus.org/routeplanner/internal/models"
	"hustbus.org/routeplanner/internal/utils"
)

const (
	defaultNearbyRadius = 500.0
	defaultNearbyLimit  = 20
)

func (api *RestAPI) nearbyStopsHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	var fieldErrors map[string][]string
	lat, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "lat", fieldErrors)
	lon, fieldErrors := utils.ParseRequiredFloatParam(queryParams, "lon", fieldErrors)
	radius, fieldErrors := utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	limit, fieldErrors := utils.ParseIntParam(queryParams, "limit", defaultNearbyLimit, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, fieldErrors)
		return
	}

	if radius == 0 {
		radius = defaultNearbyRadius
	}

	if locationErrors := utils.ValidateLocationParams(lat, lon, radius, limit); len(locationErrors) > 0 {
		api.validationErrorResponse(w, locationErrors)
		return
	}

	nearby := api.Model.NearbyStops(lat, lon, radius, limit)

	list := make([]models.NearbyStop, 0, len(nearby))
	for _, s := range nearby {
		list = append(list, models.NewNearbyStop(s.ID, s.Name, s.Lat, s.Lon, s.Distance))
	}

	api.sendResponse(w, r, models.NearbyStopsResponse{
		From:   models.Coordinate{Lat: lat, Lon: lon},
		Radius: radius,
		List:   list,
	})
}
