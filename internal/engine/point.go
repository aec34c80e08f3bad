package engine

import (
	"fmt"
	"math"

	"hustbus.org/routeplanner/internal/utils"
)

type access struct {
	stop     int
	seconds  int
	distance float64
}

// Point is a coordinate bound to a model together with the stops reachable on foot from it.
type Point struct {
	Lat    float64
	Lon    float64
	model  *Model
	access []access
}

// ResolvePoint validates a coordinate and binds it to the model.
// It fails with ErrInvalidCoordinate or ErrOutsideCoverage.
func (m *Model) ResolvePoint(lat, lon float64) (*Point, error) {
	if !validCoordinate(lat, lon) {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, lat, lon)
	}
	if !m.bounds.covers(lat, lon, m.opts.MaxAccessDistance) {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrOutsideCoverage, lat, lon)
	}

	p := &Point{Lat: lat, Lon: lon, model: m}
	for _, near := range m.stopsWithin(lat, lon, m.opts.MaxAccessDistance) {
		p.access = append(p.access, access{
			stop:     near.index,
			seconds:  m.walkSeconds(near.Distance),
			distance: near.Distance,
		})
	}
	return p, nil
}

// AccessStops is the number of stops within walking reach of the point.
func (p *Point) AccessStops() int {
	return len(p.access)
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func distanceBetween(a, b *Point) float64 {
	return utils.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}
