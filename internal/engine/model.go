package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"
)

// Stop is a boarding location known to the model.
type Stop struct {
	ID      string
	Name    string
	Lat     float64
	Lon     float64
	located bool
}

// pattern is the set of trips of one route that visit the same stop sequence.
type pattern struct {
	routeID string
	stops   []int
	trips   []trip
}

// trip holds stop times in seconds since service-day midnight, indexed like pattern.stops.
type trip struct {
	id         string
	arrivals   []int
	departures []int
}

type patternRef struct {
	pattern  int
	position int
}

type footpath struct {
	to       int
	seconds  int
	distance float64
}

// Model is an immutable transit network for a single service date. It is safe for
// concurrent use by any number of searches.
type Model struct {
	serviceDate  time.Time
	opts         Options
	stops        []Stop
	stopIndex    map[string]int
	patterns     []pattern
	stopPatterns [][]patternRef
	footpaths    [][]footpath
	grid         stopGrid
	bounds       bounds
	tripCount    int
}

// BuildModel compiles the trips of feeds that run on serviceDate into a searchable model.
func BuildModel(feeds []*gtfs.Static, serviceDate time.Time, opts Options) (*Model, error) {
	m := &Model{
		serviceDate: time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, serviceDate.Location()),
		opts:        opts.withDefaults(),
		stopIndex:   make(map[string]int),
	}

	patternIndex := make(map[string]int)
	for _, feed := range feeds {
		if feed == nil {
			continue
		}

		active := make(map[string]bool, len(feed.Services))
		for i := range feed.Services {
			active[feed.Services[i].Id] = serviceRunsOn(&feed.Services[i], m.serviceDate)
		}

		for i := range feed.Trips {
			scheduled := &feed.Trips[i]
			if scheduled.Service == nil || !active[scheduled.Service.Id] {
				continue
			}
			m.addTrip(scheduled, patternIndex)
		}
	}

	if m.tripCount == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrEmptyModel, m.serviceDate.Format("2006-01-02"))
	}

	for i := range m.patterns {
		trips := m.patterns[i].trips
		sort.SliceStable(trips, func(a, b int) bool {
			return trips[a].departures[0] < trips[b].departures[0]
		})
	}

	m.stopPatterns = make([][]patternRef, len(m.stops))
	for pi, p := range m.patterns {
		for pos, s := range p.stops {
			m.stopPatterns[s] = append(m.stopPatterns[s], patternRef{pattern: pi, position: pos})
		}
	}

	m.grid = newStopGrid(m.stops)
	m.bounds = boundsOf(m.stops)
	m.buildFootpaths()

	return m, nil
}

func (m *Model) addTrip(scheduled *gtfs.ScheduledTrip, patternIndex map[string]int) {
	if len(scheduled.StopTimes) < 2 {
		return
	}

	stopTimes := make([]gtfs.ScheduledStopTime, len(scheduled.StopTimes))
	copy(stopTimes, scheduled.StopTimes)
	sort.SliceStable(stopTimes, func(a, b int) bool {
		return stopTimes[a].StopSequence < stopTimes[b].StopSequence
	})

	t := trip{
		id:         scheduled.ID,
		arrivals:   make([]int, len(stopTimes)),
		departures: make([]int, len(stopTimes)),
	}
	stops := make([]int, len(stopTimes))

	var key strings.Builder
	if scheduled.Route != nil {
		key.WriteString(scheduled.Route.Id)
	}

	for i, st := range stopTimes {
		if st.Stop == nil {
			return
		}
		stops[i] = m.addStop(st.Stop)
		key.WriteByte('|')
		key.WriteString(st.Stop.Id)

		arrival := int(st.ArrivalTime / time.Second)
		departure := int(st.DepartureTime / time.Second)
		if arrival == 0 && departure > 0 {
			arrival = departure
		}
		if departure < arrival {
			departure = arrival
		}
		t.arrivals[i] = arrival
		t.departures[i] = departure
	}

	pi, ok := patternIndex[key.String()]
	if !ok {
		p := pattern{stops: stops}
		if scheduled.Route != nil {
			p.routeID = scheduled.Route.Id
		}
		pi = len(m.patterns)
		m.patterns = append(m.patterns, p)
		patternIndex[key.String()] = pi
	}
	m.patterns[pi].trips = append(m.patterns[pi].trips, t)
	m.tripCount++
}

func (m *Model) addStop(s *gtfs.Stop) int {
	if i, ok := m.stopIndex[s.Id]; ok {
		return i
	}

	stop := Stop{ID: s.Id, Name: s.Name}
	if s.Latitude != nil && s.Longitude != nil {
		stop.Lat = *s.Latitude
		stop.Lon = *s.Longitude
		stop.located = true
	}

	m.stops = append(m.stops, stop)
	m.stopIndex[s.Id] = len(m.stops) - 1
	return len(m.stops) - 1
}

func (m *Model) buildFootpaths() {
	m.footpaths = make([][]footpath, len(m.stops))
	for i, s := range m.stops {
		if !s.located {
			continue
		}
		for _, near := range m.stopsWithin(s.Lat, s.Lon, m.opts.MaxTransferDistance) {
			if near.index == i {
				continue
			}
			m.footpaths[i] = append(m.footpaths[i], footpath{
				to:       near.index,
				seconds:  m.walkSeconds(near.Distance),
				distance: near.Distance,
			})
		}
	}
}

// walkSeconds converts a straight-line distance into walking time on streets.
func (m *Model) walkSeconds(distance float64) int {
	return int(math.Ceil(distance * m.opts.DetourFactor / m.opts.WalkingSpeed))
}

// serviceRunsOn reports whether a GTFS service is active on date.
func serviceRunsOn(s *gtfs.Service, date time.Time) bool {
	day := dayKey(date)
	for _, d := range s.RemovedDates {
		if dayKey(d) == day {
			return false
		}
	}
	for _, d := range s.AddedDates {
		if dayKey(d) == day {
			return true
		}
	}

	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return false
	}
	if day < dayKey(s.StartDate) || day > dayKey(s.EndDate) {
		return false
	}

	switch date.Weekday() {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

// dayKey compares calendar days independently of the time zone each value carries.
func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Stats summarizes the size of a model.
type Stats struct {
	ServiceDate string `json:"service_date"`
	Stops       int    `json:"stops"`
	Patterns    int    `json:"patterns"`
	Trips       int    `json:"trips"`
	Footpaths   int    `json:"footpaths"`
}

// Stats reports counts of the model's stops, patterns, trips and footpaths.
func (m *Model) Stats() Stats {
	footpaths := 0
	for _, f := range m.footpaths {
		footpaths += len(f)
	}
	return Stats{
		ServiceDate: m.serviceDate.Format("2006-01-02"),
		Stops:       len(m.stops),
		Patterns:    len(m.patterns),
		Trips:       m.tripCount,
		Footpaths:   footpaths,
	}
}

// ServiceDate is the calendar day whose trips the model contains.
func (m *Model) ServiceDate() time.Time {
	return m.serviceDate
}

// Stops returns a copy of every stop served on the service date.
func (m *Model) Stops() []Stop {
	out := make([]Stop, len(m.stops))
	copy(out, m.stops)
	return out
}

// PatternInfo describes one route pattern for debugging.
type PatternInfo struct {
	RouteID    string
	StopIDs    []string
	Trips      int
	FirstDepot string
	LastArrive string
}

// Patterns lists the route patterns of the model.
func (m *Model) Patterns() []PatternInfo {
	out := make([]PatternInfo, 0, len(m.patterns))
	for _, p := range m.patterns {
		info := PatternInfo{RouteID: p.routeID, Trips: len(p.trips)}
		for _, s := range p.stops {
			info.StopIDs = append(info.StopIDs, m.stops[s].ID)
		}
		if len(p.trips) > 0 {
			last := p.trips[len(p.trips)-1]
			info.FirstDepot = formatSeconds(p.trips[0].departures[0])
			info.LastArrive = formatSeconds(last.arrivals[len(last.arrivals)-1])
		}
		out = append(out, info)
	}
	return out
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
