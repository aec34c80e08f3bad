package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"hustbus.org/routeplanner/internal/models"
	"hustbus.org/routeplanner/internal/planner"
	"hustbus.org/routeplanner/internal/utils"
)

type routeParams struct {
	Time         string `query:"time" validate:"required"`
	MaxTransfers int    `query:"max_transfers" validate:"gte=0"`
}

var queryValidator = newQueryValidator()

func newQueryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("query")
	})
	return v
}

// parseRouteQuery reads the parameters shared by /find_route, /find_routes and /journey.
// On failure it has already written the 400 response.
func (api *RestAPI) parseRouteQuery(w http.ResponseWriter, r *http.Request) (planner.Query, bool) {
	params := r.URL.Query()

	var fieldErrors map[string][]string
	latFrom, fieldErrors := utils.ParseRequiredFloatParam(params, "lat_from", fieldErrors)
	lonFrom, fieldErrors := utils.ParseRequiredFloatParam(params, "lon_from", fieldErrors)
	latTo, fieldErrors := utils.ParseRequiredFloatParam(params, "lat_to", fieldErrors)
	lonTo, fieldErrors := utils.ParseRequiredFloatParam(params, "lon_to", fieldErrors)
	maxTransfers, fieldErrors := utils.ParseIntParam(params, "max_transfers", planner.DefaultMaxTransfers, fieldErrors)

	rp := routeParams{Time: params.Get("time"), MaxTransfers: maxTransfers}
	mergeValidationErrors(fieldErrors, queryValidator.Struct(rp))

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, fieldErrors)
		return planner.Query{}, false
	}

	departure, err := utils.ParseClockTime(rp.Time)
	if err != nil {
		api.invalidTimeResponse(w)
		return planner.Query{}, false
	}

	return planner.Query{
		From:         models.Coordinate{Lat: latFrom, Lon: lonFrom},
		To:           models.Coordinate{Lat: latTo, Lon: lonTo},
		Departure:    departure,
		MaxTransfers: maxTransfers,
	}, true
}

func mergeValidationErrors(fieldErrors map[string][]string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("Missing required field %q.", fe.Field())
		case "gte":
			msg = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		default:
			msg = fmt.Sprintf("Invalid field value for field %q.", fe.Field())
		}
		fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], msg)
	}
}
