package models

// Coordinate is a WGS84 position echoed back to clients.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Segment is one bus ride of an itinerary.
type Segment struct {
	LineID        string `json:"lineId"`
	LineName      string `json:"lineName"`
	Mode          string `json:"mode"`
	DurationSec   int    `json:"duration_sec"`
	DurationMin   int    `json:"duration_min"`
	FromStop      string `json:"from_stop"`
	ToStop        string `json:"to_stop"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	TripID        string `json:"trip_id"`
}

type RouteDetails struct {
	DepartureTime  string `json:"departure_time,omitempty"`
	TotalTimeSec   int    `json:"total_time_sec"`
	WalkingTimeSec int    `json:"walking_time_sec"`
	TransitTimeSec int    `json:"transit_time_sec"`
	TransfersCount int    `json:"transfers_count"`
}

// RouteResult is a ranked candidate returned by /find_routes.
type RouteResult struct {
	ID              string       `json:"id"`
	ActualTransfers int          `json:"actual_transfers"`
	Summary         string       `json:"summary"`
	Details         RouteDetails `json:"details"`
	From            Coordinate   `json:"from"`
	To              Coordinate   `json:"to"`
	Segments        []Segment    `json:"segments"`
}

type RouteSummary struct {
	Summary string       `json:"summary"`
	Details RouteDetails `json:"details"`
}

// SingleRouteResponse is the /find_route success body.
type SingleRouteResponse struct {
	From     Coordinate     `json:"from"`
	To       Coordinate     `json:"to"`
	Routes   []RouteSummary `json:"routes"`
	Segments []Segment      `json:"segments"`
}

type NotFoundDetails struct {
	From        Coordinate `json:"from"`
	To          Coordinate `json:"to"`
	Reason      string     `json:"reason"`
	Suggestions []string   `json:"suggestions"`
	Errors      []string   `json:"errors"`
}

// NotFoundResponse tells a client the query was valid but no itinerary connects the points.
type NotFoundResponse struct {
	Message string          `json:"message"`
	Details NotFoundDetails `json:"details"`
}
