package engine

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
)

const unreached = math.MaxInt32

type labelKind uint8

const (
	labelNone labelKind = iota
	labelAccess
	labelRide
	labelWalk
)

// label records how a stop was reached in one round of the search.
type label struct {
	kind    labelKind
	arrival int

	pattern int
	trip    int
	board   int
	alight  int

	from     int
	seconds  int
	distance float64
}

// RouteSummary is the outcome of a search: times in seconds and the number of vehicle changes.
type RouteSummary struct {
	TravelTime  int  `json:"travel_time_seconds"`
	WalkingTime int  `json:"walking_time_seconds"`
	TransitTime int  `json:"transit_time_seconds"`
	Transfers   int  `json:"transfers"`
	UsedTransit bool `json:"used_transit"`
}

const (
	legWalking  = "walking"
	legTransit  = "transit"
	legTransfer = "transfer"
)

// noStop marks a leg end at the query origin or destination rather than a stop.
const noStop = -1

type leg struct {
	kind      string
	fromStop  int
	toStop    int
	departure int
	arrival   int
	distance  float64

	pattern int
	trip    int
	board   int
	alight  int
}

type journey struct {
	origin      *Point
	destination *Point
	departure   int
	legs        []leg
}

func (j *journey) arrival() int {
	return j.legs[len(j.legs)-1].arrival
}

func (j *journey) summary() RouteSummary {
	s := RouteSummary{TravelTime: j.arrival() - j.departure}
	rides := 0
	for _, l := range j.legs {
		switch l.kind {
		case legTransit:
			rides++
			s.TransitTime += l.arrival - l.departure
		default:
			s.WalkingTime += l.arrival - l.departure
		}
	}
	s.UsedTransit = rides > 0
	if rides > 1 {
		s.Transfers = rides - 1
	}
	return s
}

// FindRoute returns the earliest-arriving journey from origin to destination leaving at
// departure with at most maxTransfers vehicle changes, or nil when none exists.
func (m *Model) FindRoute(ctx context.Context, origin, destination *Point, departure, maxTransfers int) (*RouteSummary, error) {
	j, err := m.search(ctx, origin, destination, departure, maxTransfers)
	if err != nil || j == nil {
		return nil, err
	}
	s := j.summary()
	return &s, nil
}

func (m *Model) search(ctx context.Context, origin, destination *Point, departure, maxTransfers int) (*journey, error) {
	if origin == nil || destination == nil {
		return nil, fmt.Errorf("%w: nil point", ErrForeignPoint)
	}
	if origin.model != m || destination.model != m {
		return nil, ErrForeignPoint
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxTransfers < 0 {
		maxTransfers = 0
	}
	// Every useful round improves at least one stop.
	if maxTransfers > len(m.stops) {
		maxTransfers = len(m.stops)
	}

	transit, err := m.raptor(ctx, origin, destination, departure, maxTransfers+1)
	if err != nil {
		return nil, err
	}

	walk := m.directWalk(origin, destination, departure)
	if walk != nil && (transit == nil || walk.arrival() <= transit.arrival()) {
		return walk, nil
	}
	return transit, nil
}

func (m *Model) directWalk(origin, destination *Point, departure int) *journey {
	d := distanceBetween(origin, destination)
	if d > m.opts.MaxWalkDistance {
		return nil
	}
	return &journey{
		origin:      origin,
		destination: destination,
		departure:   departure,
		legs: []leg{{
			kind:      legWalking,
			fromStop:  noStop,
			toStop:    noStop,
			departure: departure,
			arrival:   departure + m.walkSeconds(d),
			distance:  d,
		}},
	}
}

// raptor runs up to maxRides rounds; round k holds the best arrivals using exactly k vehicles.
func (m *Model) raptor(ctx context.Context, origin, destination *Point, departure, maxRides int) (*journey, error) {
	n := len(m.stops)
	best := make([]int, n)
	for i := range best {
		best[i] = unreached
	}

	round0 := make([]label, n)
	marked := make([]bool, n)
	for _, a := range origin.access {
		arr := departure + a.seconds
		if arr < best[a.stop] {
			best[a.stop] = arr
			round0[a.stop] = label{kind: labelAccess, arrival: arr, seconds: a.seconds, distance: a.distance}
			marked[a.stop] = true
		}
	}

	rides := [][]label{nil}
	walks := [][]label{round0}

	bestTarget := unreached
	targetRound := 0
	var targetEgress access

	for k := 1; k <= maxRides; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		queue := m.collectPatterns(marked)
		if len(queue) == 0 {
			break
		}

		prevArr := slices.Clone(best)
		ride := make([]label, n)
		next := make([]bool, n)

		for _, q := range queue {
			p := &m.patterns[q.pattern]
			current, boardPos := -1, 0
			for pos := q.position; pos < len(p.stops); pos++ {
				s := p.stops[pos]
				if current >= 0 {
					arr := p.trips[current].arrivals[pos]
					if arr < best[s] && arr < bestTarget {
						best[s] = arr
						ride[s] = label{kind: labelRide, arrival: arr, pattern: q.pattern, trip: current, board: boardPos, alight: pos}
						next[s] = true
					}
				}
				if pos == len(p.stops)-1 || prevArr[s] == unreached {
					continue
				}
				if current < 0 || prevArr[s] <= p.trips[current].departures[pos] {
					t := earliestTrip(p, pos, prevArr[s])
					if t >= 0 && (current < 0 || p.trips[t].departures[pos] < p.trips[current].departures[pos]) {
						current, boardPos = t, pos
					}
				}
			}
		}

		walk := make([]label, n)
		for s := range ride {
			if ride[s].kind != labelRide {
				continue
			}
			for _, fp := range m.footpaths[s] {
				arr := ride[s].arrival + fp.seconds
				if arr < best[fp.to] && arr < bestTarget {
					best[fp.to] = arr
					walk[fp.to] = label{kind: labelWalk, arrival: arr, from: s, seconds: fp.seconds, distance: fp.distance}
					next[fp.to] = true
				}
			}
		}

		for _, e := range destination.access {
			if ride[e.stop].kind != labelRide {
				continue
			}
			if arr := ride[e.stop].arrival + e.seconds; arr < bestTarget {
				bestTarget = arr
				targetRound = k
				targetEgress = e
			}
		}

		rides = append(rides, ride)
		walks = append(walks, walk)
		marked = next
	}

	if targetRound == 0 {
		return nil, nil
	}
	return m.reconstruct(origin, destination, departure, rides, walks, targetRound, targetEgress)
}

type queuedPattern struct {
	pattern  int
	position int
}

// collectPatterns returns every pattern serving a marked stop with the earliest such position,
// ordered by pattern index so equal-time ties resolve the same way on every run.
func (m *Model) collectPatterns(marked []bool) []queuedPattern {
	earliest := make(map[int]int)
	for s, ok := range marked {
		if !ok {
			continue
		}
		for _, ref := range m.stopPatterns[s] {
			if pos, seen := earliest[ref.pattern]; !seen || ref.position < pos {
				earliest[ref.pattern] = ref.position
			}
		}
	}

	queue := make([]queuedPattern, 0, len(earliest))
	for p, pos := range earliest {
		queue = append(queue, queuedPattern{pattern: p, position: pos})
	}
	sort.Slice(queue, func(a, b int) bool { return queue[a].pattern < queue[b].pattern })
	return queue
}

// earliestTrip returns the trip of p leaving position pos soonest at or after time, or -1.
func earliestTrip(p *pattern, pos, time int) int {
	found := -1
	for i := range p.trips {
		dep := p.trips[i].departures[pos]
		if dep < time {
			continue
		}
		if found < 0 || dep < p.trips[found].departures[pos] {
			found = i
		}
	}
	return found
}

// arrivalLabel is the better of the ride and walk labels a stop holds in round k.
func arrivalLabel(rides, walks [][]label, k, stop int) label {
	var l label
	if rides[k] != nil && rides[k][stop].kind != labelNone {
		l = rides[k][stop]
	}
	if w := walks[k][stop]; w.kind != labelNone && (l.kind == labelNone || w.arrival < l.arrival) {
		l = w
	}
	return l
}

func (m *Model) reconstruct(origin, destination *Point, departure int, rides, walks [][]label, round int, egress access) (*journey, error) {
	stop := egress.stop
	lbl := rides[round][stop]
	reversed := []leg{{
		kind:      legWalking,
		fromStop:  stop,
		toStop:    noStop,
		departure: lbl.arrival,
		arrival:   lbl.arrival + egress.seconds,
		distance:  egress.distance,
	}}

	k := round
	for lbl.kind != labelAccess {
		switch lbl.kind {
		case labelRide:
			p := &m.patterns[lbl.pattern]
			t := &p.trips[lbl.trip]
			boardStop := p.stops[lbl.board]
			reversed = append(reversed, leg{
				kind:      legTransit,
				fromStop:  boardStop,
				toStop:    stop,
				departure: t.departures[lbl.board],
				arrival:   t.arrivals[lbl.alight],
				pattern:   lbl.pattern,
				trip:      lbl.trip,
				board:     lbl.board,
				alight:    lbl.alight,
			})

			boardBy := t.departures[lbl.board]
			stop = boardStop
			lbl = label{}
			for j := k - 1; j >= 0; j-- {
				if l := arrivalLabel(rides, walks, j, stop); l.kind != labelNone && l.arrival <= boardBy {
					lbl, k = l, j
					break
				}
			}
		case labelWalk:
			reversed = append(reversed, leg{
				kind:      legTransfer,
				fromStop:  lbl.from,
				toStop:    stop,
				departure: lbl.arrival - lbl.seconds,
				arrival:   lbl.arrival,
				distance:  lbl.distance,
			})
			stop = lbl.from
			lbl = rides[k][stop]
		default:
			return nil, fmt.Errorf("journey reconstruction lost its label at stop %s", m.stops[stop].ID)
		}
	}

	reversed = append(reversed, leg{
		kind:      legWalking,
		fromStop:  noStop,
		toStop:    stop,
		departure: departure,
		arrival:   lbl.arrival,
		distance:  lbl.distance,
	})

	slices.Reverse(reversed)
	return &journey{origin: origin, destination: destination, departure: departure, legs: reversed}, nil
}
