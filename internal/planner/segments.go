package planner

import (
	"encoding/json"
	"strings"

	"hustbus.org/routeplanner/internal/engine"
	"hustbus.org/routeplanner/internal/models"
	"hustbus.org/routeplanner/internal/utils"
)

const (
	transitLeg = "transit"
	busMode    = "bus"
)

// ExtractSegments converts the transit legs of an itinerary into segments, in leg order.
// Other legs are skipped. Missing or mistyped properties fall back to zero values.
func ExtractSegments(itinerary *engine.Itinerary, departure int) []models.Segment {
	segments := []models.Segment{}
	if itinerary == nil {
		return segments
	}

	for _, feature := range itinerary.Features {
		props := feature.Properties
		if stringProp(props, "leg_type") != transitLeg {
			continue
		}

		lineID := stringProp(props, "route_id")
		duration := intProp(props, "duration")
		segments = append(segments, models.Segment{
			LineID:        lineID,
			LineName:      LineName(lineID),
			Mode:          busMode,
			DurationSec:   duration,
			DurationMin:   floorDiv(duration, 60),
			FromStop:      stringProp(props, "from_name"),
			ToStop:        stringProp(props, "to_name"),
			DepartureTime: utils.FormatClockTime(intProp(props, "departure_time")),
			ArrivalTime:   utils.FormatClockTime(intProp(props, "arrival_time")),
			TripID:        stringProp(props, "trip_id"),
		})
	}
	return segments
}

// LineName is the display number of a route: "34_1" is line "34".
func LineName(lineID string) string {
	name, _, _ := strings.Cut(lineID, "_")
	return name
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func stringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func intProp(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	}
	return 0
}
