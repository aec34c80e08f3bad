package restapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRouteHandlerWithSampleModel(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/find_route?"+scenarioQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	data := decodeObject(t, body)
	assert.Equal(t, map[string]any{"lat": 21.0278, "lon": 105.8342}, data["from"])
	assert.Equal(t, map[string]any{"lat": 21.0388, "lon": 105.788}, data["to"])

	routes := data["routes"].([]any)
	require.Len(t, routes, 1)
	route := routes[0].(map[string]any)
	assert.Contains(t, route["summary"], "2 tuyến, tổng ")

	details := route["details"].(map[string]any)
	assert.Equal(t, 1.0, details["transfers_count"])
	assert.Equal(t, 1500.0, details["transit_time_sec"])
	assert.NotContains(t, details, "departure_time")

	segments := data["segments"].([]any)
	require.Len(t, segments, 2)

	first := segments[0].(map[string]any)
	assert.Equal(t, "34_1", first["lineId"])
	assert.Equal(t, "34", first["lineName"])
	assert.Equal(t, "bus", first["mode"])
	assert.Equal(t, 1020.0, first["duration_sec"])
	assert.Equal(t, 17.0, first["duration_min"])
	assert.Equal(t, "Hoan Kiem", first["from_stop"])
	assert.Equal(t, "Kim Ma", first["to_stop"])
	assert.Equal(t, "08:05:00", first["departure_time"])
	assert.Equal(t, "08:22:00", first["arrival_time"])
	assert.Equal(t, "T34a", first["trip_id"])

	second := segments[1].(map[string]any)
	assert.Equal(t, "55", second["lineName"])
	assert.Equal(t, "08:27:00", second["departure_time"])
	assert.Equal(t, "08:35:00", second["arrival_time"])
}

func TestFindRouteHandlerReportsEngineTotals(t *testing.T) {
	api := createTestApiWithEngine(t, thirtyMinuteJourney())

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/find_route?"+scenarioQuery+"&max_transfers=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeObject(t, body)
	route := data["routes"].([]any)[0].(map[string]any)
	details := route["details"].(map[string]any)
	assert.Equal(t, 1800.0, details["total_time_sec"])
	assert.Equal(t, 1.0, details["transfers_count"])
	assert.Equal(t, "2 tuyến, tổng 1800s", route["summary"])
	assert.Len(t, data["segments"], 2, "one segment per transit leg")
}

func TestFindRouteHandlerWalkingOnly(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/find_route?"+walkingQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeObject(t, body)
	require.Contains(t, data, "routes")
	assert.Empty(t, data["segments"])
	details := data["routes"].([]any)[0].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, 0.0, details["transit_time_sec"])
	assert.Equal(t, details["total_time_sec"], details["walking_time_sec"])
}

func TestFindRouteHandlerNotFound(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/find_route?"+scenarioQuery+"&max_transfers=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeObject(t, body)
	assert.Equal(t, "Không tìm thấy lộ trình xe buýt phù hợp.", data["message"])
	assert.NotContains(t, data, "routes")
	assert.NotContains(t, data, "segments")

	details := data["details"].(map[string]any)
	assert.Equal(t, "Có thể chưa có tuyến xe nào kết nối giữa 2 điểm này", details["reason"])
	assert.Len(t, details["suggestions"], 3)
	assert.Nil(t, details["errors"])
}

func TestFindRouteHandlerEngineFailure(t *testing.T) {
	api := createTestApiWithEngine(t, &stubEngine{err: errors.New("graph exploded")})

	resp, body := serveApiAndRetrieveEndpoint(t, api, "/find_route?"+scenarioQuery)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	data := decodeObject(t, body)
	assert.Equal(t, "Lỗi tìm kiếm tuyến: graph exploded", data["detail"])
}

func TestFindRouteHandlerOutsideCoverage(t *testing.T) {
	api := createTestApi(t)

	resp, body := serveApiAndRetrieveEndpoint(t, api,
		"/find_route?lat_from=10.0&lon_from=106.0&lat_to=21.0388&lon_to=105.7880&time=08:00:00")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decodeObject(t, body)["detail"], "outside the transit model coverage")
}

func TestRouteHandlersRejectInvalidTime(t *testing.T) {
	api := createTestApi(t)

	for _, endpoint := range []string{"/find_route", "/find_routes", "/journey"} {
		for _, value := range []string{"8:0", "08-00-00", "aa:bb:cc", "08:00:00:00", "9223372036854775807:0:0"} {
			t.Run(endpoint+" "+value, func(t *testing.T) {
				query := "lat_from=21.0278&lon_from=105.8342&lat_to=21.0388&lon_to=105.7880&time=" + value
				resp, body := serveApiAndRetrieveEndpoint(t, api, endpoint+"?"+query)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.Equal(t, "Time phải ở định dạng hh:mm:ss", decodeObject(t, body)["detail"])
			})
		}
	}
}

func TestRouteHandlersAcceptPermissiveTime(t *testing.T) {
	api := createTestApiWithEngine(t, thirtyMinuteJourney())

	resp, _ := serveApiAndRetrieveEndpoint(t, api,
		"/find_routes?lat_from=21.0278&lon_from=105.8342&lat_to=21.0388&lon_to=105.7880&time=07:75:00")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
