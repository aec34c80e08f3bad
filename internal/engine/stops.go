package engine

import (
	"math"
	"sort"

	"hustbus.org/routeplanner/internal/utils"
)

const gridCellDegrees = 0.01

type cellKey struct {
	lat int
	lon int
}

// stopGrid buckets located stops into fixed-size lat/lon cells.
type stopGrid struct {
	cells map[cellKey][]int
}

func newStopGrid(stops []Stop) stopGrid {
	g := stopGrid{cells: make(map[cellKey][]int)}
	for i, s := range stops {
		if !s.located {
			continue
		}
		k := cellOf(s.Lat, s.Lon)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func cellOf(lat, lon float64) cellKey {
	return cellKey{
		lat: int(math.Floor(lat / gridCellDegrees)),
		lon: int(math.Floor(lon / gridCellDegrees)),
	}
}

type bounds struct {
	minLat, maxLat float64
	minLon, maxLon float64
	empty          bool
}

func boundsOf(stops []Stop) bounds {
	b := bounds{empty: true}
	for _, s := range stops {
		if !s.located {
			continue
		}
		if b.empty {
			b = bounds{minLat: s.Lat, maxLat: s.Lat, minLon: s.Lon, maxLon: s.Lon}
			continue
		}
		b.minLat = math.Min(b.minLat, s.Lat)
		b.maxLat = math.Max(b.maxLat, s.Lat)
		b.minLon = math.Min(b.minLon, s.Lon)
		b.maxLon = math.Max(b.maxLon, s.Lon)
	}
	return b
}

// covers reports whether lat,lon lies inside the box grown by margin meters on every side.
func (b bounds) covers(lat, lon, margin float64) bool {
	if b.empty {
		return false
	}
	latSpan, lonSpan := utils.MetersToDegreeSpans(lat, margin)
	return lat >= b.minLat-latSpan && lat <= b.maxLat+latSpan &&
		lon >= b.minLon-lonSpan && lon <= b.maxLon+lonSpan
}

// NearbyStop is a stop with its straight-line distance from a query point.
type NearbyStop struct {
	Stop
	Distance float64
	index    int
}

// stopsWithin returns the located stops no farther than radius meters, nearest first.
func (m *Model) stopsWithin(lat, lon, radius float64) []NearbyStop {
	latSpan, lonSpan := utils.MetersToDegreeSpans(lat, radius)
	lo := cellOf(lat-latSpan, lon-lonSpan)
	hi := cellOf(lat+latSpan, lon+lonSpan)

	var out []NearbyStop
	for cy := lo.lat; cy <= hi.lat; cy++ {
		for cx := lo.lon; cx <= hi.lon; cx++ {
			for _, i := range m.grid.cells[cellKey{lat: cy, lon: cx}] {
				s := m.stops[i]
				d := utils.Haversine(lat, lon, s.Lat, s.Lon)
				if d <= radius {
					out = append(out, NearbyStop{Stop: s, Distance: d, index: i})
				}
			}
		}
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Distance == out[b].Distance {
			return out[a].ID < out[b].ID
		}
		return out[a].Distance < out[b].Distance
	})
	return out
}

// NearbyStops returns up to limit stops within radius meters of lat,lon, nearest first.
// A non-positive limit returns every match.
func (m *Model) NearbyStops(lat, lon, radius float64, limit int) []NearbyStop {
	if radius <= 0 {
		return nil
	}
	found := m.stopsWithin(lat, lon, radius)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}
