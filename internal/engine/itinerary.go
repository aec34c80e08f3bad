package engine

import (
	"context"

	"github.com/twpayne/go-polyline"

	"hustbus.org/routeplanner/internal/utils"
)

// Itinerary is a GeoJSON FeatureCollection with one LineString feature per journey leg.
type Itinerary struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry coordinates are [lon, lat] pairs.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

const (
	originName      = "Origin"
	destinationName = "Destination"
)

// DetailedJourney describes the journey FindRoute would summarize for the same arguments.
// The collection is empty when no journey exists.
func (m *Model) DetailedJourney(ctx context.Context, origin, destination *Point, departure, maxTransfers int) (*Itinerary, error) {
	j, err := m.search(ctx, origin, destination, departure, maxTransfers)
	if err != nil {
		return nil, err
	}

	it := &Itinerary{Type: "FeatureCollection", Features: []Feature{}}
	if j == nil {
		return it, nil
	}
	for _, l := range j.legs {
		it.Features = append(it.Features, m.legFeature(j, l))
	}
	return it, nil
}

func (m *Model) legFeature(j *journey, l leg) Feature {
	fromLat, fromLon, fromName := m.legEnd(j.origin, l.fromStop, originName)
	toLat, toLon, toName := m.legEnd(j.destination, l.toStop, destinationName)

	props := map[string]any{
		"leg_type":       l.kind,
		"duration":       l.arrival - l.departure,
		"departure_time": l.departure,
		"arrival_time":   l.arrival,
		"from_name":      fromName,
		"to_name":        toName,
	}

	var coords [][]float64
	if l.kind == legTransit {
		p := &m.patterns[l.pattern]
		var latLons [][]float64
		for pos := l.board; pos <= l.alight; pos++ {
			s := m.stops[p.stops[pos]]
			coords = append(coords, []float64{s.Lon, s.Lat})
			latLons = append(latLons, []float64{s.Lat, s.Lon})
		}
		props["route_id"] = p.routeID
		props["trip_id"] = p.trips[l.trip].id
		props["stops"] = l.alight - l.board
		props["polyline"] = string(polyline.EncodeCoords(latLons))
	} else {
		coords = [][]float64{{fromLon, fromLat}, {toLon, toLat}}
		props["distance"] = l.distance
		props["direction"] = utils.CompassDirection(fromLat, fromLon, toLat, toLon)
	}

	return Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "LineString", Coordinates: coords},
		Properties: props,
	}
}

func (m *Model) legEnd(p *Point, stop int, name string) (float64, float64, string) {
	if stop == noStop {
		return p.Lat, p.Lon, name
	}
	s := m.stops[stop]
	return s.Lat, s.Lon, s.Name
}
