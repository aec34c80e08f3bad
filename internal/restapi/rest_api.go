package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"hustbus.org/routeplanner/internal/app"
	"hustbus.org/routeplanner/internal/appconf"
	"hustbus.org/routeplanner/internal/webui"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.Config.TrustProxy),
	}
}

// SetRoutes registers every endpoint on router. The debug pages are only mounted outside production.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/find_route", api.findRouteHandler)
	router.HandlerFunc(http.MethodGet, "/find_routes", api.findRoutesHandler)
	router.HandlerFunc(http.MethodGet, "/journey", api.journeyHandler)
	router.HandlerFunc(http.MethodGet, "/nearby_stops", api.nearbyStopsHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	if api.Config.Env != appconf.Production {
		webui.SetWebUIRoutes(router, &webui.WebUI{Model: api.Model})
	}
}

// Handler returns the router wrapped in the full middleware chain:
// request logging, security headers, rate limiting, then compression.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

// Stop releases the background resources of the middleware chain.
func (api *RestAPI) Stop() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
