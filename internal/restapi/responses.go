package restapi

import (
	"encoding/json"
	"net/http"

	"hustbus.org/routeplanner/internal/logging"
)

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}

// sendResponse writes response as a 200 JSON body.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response any) {
	body, err := json.Marshal(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	setJSONResponseType(&w)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.FromContext(r.Context()).Debug("failed to write response", "error", err, "path", r.URL.Path)
	}
}
