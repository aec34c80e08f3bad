package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hustbus.org/routeplanner/internal/engine"
)

// WebUI serves read-only debug pages over a loaded transit model.
type WebUI struct {
	Model *engine.Model
}

func SetWebUIRoutes(router *httprouter.Router, webUI *WebUI) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
