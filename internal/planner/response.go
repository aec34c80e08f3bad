package planner

import (
	"fmt"
	"slices"

	"hustbus.org/routeplanner/internal/models"
	"hustbus.org/routeplanner/internal/utils"
)

const (
	notFoundMessage = "Không tìm thấy lộ trình xe buýt phù hợp."
	notFoundReason  = "Có thể chưa có tuyến xe nào kết nối giữa 2 điểm này"
)

var notFoundSuggestions = []string{
	"Thử tìm stops gần điểm xuất phát và đích",
	"Kiểm tra xem có tuyến xe nào đi qua khu vực gần đó",
	"Với khoảng cách ngắn này, bạn có thể cân nhắc đi bộ hoặc sử dụng phương tiện khác",
}

// AssembleSingle builds the /find_route body for a found journey.
func AssembleSingle(q Query, r *RouteResult) models.SingleRouteResponse {
	return models.SingleRouteResponse{
		From: q.From,
		To:   q.To,
		Routes: []models.RouteSummary{{
			Summary: fmt.Sprintf("%d tuyến, tổng %ds", len(r.Segments), r.Summary.TravelTime),
			Details: routeDetails(r, ""),
		}},
		Segments: r.Segments,
	}
}

// AssembleMulti builds the /find_routes body, one entry per accepted route.
func AssembleMulti(q Query, routes []RouteResult) []models.RouteResult {
	out := make([]models.RouteResult, 0, len(routes))
	for i := range routes {
		r := &routes[i]
		out = append(out, models.RouteResult{
			ID:              fmt.Sprintf("route_%d", r.Budget),
			ActualTransfers: r.Summary.Transfers,
			Summary: fmt.Sprintf("%d tuyến, %d lần chuyển, tổng %d giay",
				len(r.Segments), r.Summary.Transfers, r.Summary.TravelTime),
			Details:  routeDetails(r, utils.FormatClockTime(q.Departure)),
			From:     q.From,
			To:       q.To,
			Segments: r.Segments,
		})
	}
	return out
}

// NotFound explains that no itinerary connects the query points. Errors stays null without diagnostics.
func NotFound(q Query, diagnostics []string) models.NotFoundResponse {
	var errs []string
	if len(diagnostics) > 0 {
		errs = slices.Clone(diagnostics)
	}

	return models.NotFoundResponse{
		Message: notFoundMessage,
		Details: models.NotFoundDetails{
			From:        q.From,
			To:          q.To,
			Reason:      notFoundReason,
			Suggestions: slices.Clone(notFoundSuggestions),
			Errors:      errs,
		},
	}
}

func routeDetails(r *RouteResult, departure string) models.RouteDetails {
	return models.RouteDetails{
		DepartureTime:  departure,
		TotalTimeSec:   r.Summary.TravelTime,
		WalkingTimeSec: r.Summary.WalkingTime,
		TransitTimeSec: r.Summary.TransitTime,
		TransfersCount: r.Summary.Transfers,
	}
}
