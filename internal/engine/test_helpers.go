package engine

import (
	"testing"
	"time"

	"github.com/jamespfennell/gtfs"
)

// SampleServiceDate is a Monday on which the weekday trips of SampleFeed run.
var SampleServiceDate = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

// SampleFeed is a small Hanoi network: route 34_1 runs S1-S2-S3, route 55_2 runs S4-S5 a short
// walk from S3, and route 86_1 links S1 and S5 directly on Sundays only.
func SampleFeed() *gtfs.Static {
	coord := func(v float64) *float64 { return &v }
	hms := func(h, m, s int) time.Duration {
		return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	}

	stops := []*gtfs.Stop{
		{Id: "S1", Name: "Hoan Kiem", Latitude: coord(21.0280), Longitude: coord(105.8350)},
		{Id: "S2", Name: "Van Mieu", Latitude: coord(21.0330), Longitude: coord(105.8150)},
		{Id: "S3", Name: "Kim Ma", Latitude: coord(21.0360), Longitude: coord(105.8000)},
		{Id: "S4", Name: "Kim Ma B", Latitude: coord(21.0362), Longitude: coord(105.7995)},
		{Id: "S5", Name: "Cau Giay", Latitude: coord(21.0385), Longitude: coord(105.7885)},
	}
	s1, s2, s3, s4, s5 := stops[0], stops[1], stops[2], stops[3], stops[4]

	weekday := &gtfs.Service{
		Id:     "WEEKDAY",
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	sunday := &gtfs.Service{
		Id:        "SUNDAY",
		Sunday:    true,
		StartDate: weekday.StartDate,
		EndDate:   weekday.EndDate,
	}

	r34 := &gtfs.Route{Id: "34_1", ShortName: "34"}
	r55 := &gtfs.Route{Id: "55_2", ShortName: "55"}
	r86 := &gtfs.Route{Id: "86_1", ShortName: "86"}

	stopTime := func(stop *gtfs.Stop, seq int, at time.Duration) gtfs.ScheduledStopTime {
		return gtfs.ScheduledStopTime{Stop: stop, StopSequence: seq, ArrivalTime: at, DepartureTime: at}
	}

	return &gtfs.Static{
		Routes:   []gtfs.Route{*r34, *r55, *r86},
		Services: []gtfs.Service{*weekday, *sunday},
		Stops:    []gtfs.Stop{*s1, *s2, *s3, *s4, *s5},
		Trips: []gtfs.ScheduledTrip{
			{ID: "T34a", Route: r34, Service: weekday, StopTimes: []gtfs.ScheduledStopTime{
				stopTime(s1, 1, hms(8, 5, 0)), stopTime(s2, 2, hms(8, 15, 0)), stopTime(s3, 3, hms(8, 22, 0)),
			}},
			{ID: "T34b", Route: r34, Service: weekday, StopTimes: []gtfs.ScheduledStopTime{
				stopTime(s1, 1, hms(8, 35, 0)), stopTime(s2, 2, hms(8, 45, 0)), stopTime(s3, 3, hms(8, 52, 0)),
			}},
			{ID: "T55a", Route: r55, Service: weekday, StopTimes: []gtfs.ScheduledStopTime{
				stopTime(s4, 1, hms(8, 20, 0)), stopTime(s5, 2, hms(8, 30, 0)),
			}},
			{ID: "T55b", Route: r55, Service: weekday, StopTimes: []gtfs.ScheduledStopTime{
				stopTime(s4, 1, hms(8, 27, 0)), stopTime(s5, 2, hms(8, 35, 0)),
			}},
			{ID: "T86", Route: r86, Service: sunday, StopTimes: []gtfs.ScheduledStopTime{
				stopTime(s1, 1, hms(8, 10, 0)), stopTime(s5, 2, hms(8, 20, 0)),
			}},
		},
	}
}

// NewSampleModel builds SampleFeed for SampleServiceDate with default options.
func NewSampleModel(t *testing.T) *Model {
	t.Helper()

	m, err := BuildModel([]*gtfs.Static{SampleFeed()}, SampleServiceDate, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to build sample model: %v", err)
	}
	return m
}
