package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hustbus.org/routeplanner/internal/engine"
)

func foundRoute() RouteResult {
	return RouteResult{
		Budget:   3,
		Summary:  engine.RouteSummary{TravelTime: 1800, WalkingTime: 223, TransitTime: 1500, Transfers: 1, UsedTransit: true},
		Segments: ExtractSegments(transferItinerary(), 8*3600),
	}
}

func TestAssembleSingle(t *testing.T) {
	r := foundRoute()
	resp := AssembleSingle(sampleQuery(), &r)

	assert.Equal(t, sampleQuery().From, resp.From)
	assert.Equal(t, sampleQuery().To, resp.To)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, "2 tuyến, tổng 1800s", resp.Routes[0].Summary)
	assert.Equal(t, 1800, resp.Routes[0].Details.TotalTimeSec)
	assert.Equal(t, 1, resp.Routes[0].Details.TransfersCount)
	assert.Equal(t, 223, resp.Routes[0].Details.WalkingTimeSec)
	assert.Equal(t, 1500, resp.Routes[0].Details.TransitTimeSec)
	assert.Empty(t, resp.Routes[0].Details.DepartureTime)
	assert.Len(t, resp.Segments, 2)
}

func TestAssembleMulti(t *testing.T) {
	routes := AssembleMulti(sampleQuery(), []RouteResult{foundRoute()})
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, "route_3", r.ID)
	assert.Equal(t, 1, r.ActualTransfers)
	assert.Equal(t, "2 tuyến, 1 lần chuyển, tổng 1800 giay", r.Summary)
	assert.Equal(t, "08:00:00", r.Details.DepartureTime)
	assert.Equal(t, 1800, r.Details.TotalTimeSec)
	assert.Len(t, r.Segments, 2)

	assert.NotNil(t, AssembleMulti(sampleQuery(), nil))
}

func TestNotFound(t *testing.T) {
	resp := NotFound(sampleQuery(), nil)
	assert.Equal(t, "Không tìm thấy lộ trình xe buýt phù hợp.", resp.Message)
	assert.Equal(t, "Có thể chưa có tuyến xe nào kết nối giữa 2 điểm này", resp.Details.Reason)
	assert.Len(t, resp.Details.Suggestions, 3)
	assert.Nil(t, resp.Details.Errors)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"errors":null`)

	withErrors := NotFound(sampleQuery(), []string{"graph corrupted"})
	assert.Equal(t, []string{"graph corrupted"}, withErrors.Details.Errors)

	withErrors.Details.Suggestions[0] = "changed"
	assert.NotEqual(t, "changed", NotFound(sampleQuery(), nil).Details.Suggestions[0])
}
