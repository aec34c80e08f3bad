package restapi

import (
	"encoding/json"
	"net/http"

	"hustbus.org/routeplanner/internal/logging"
)

const (
	invalidTimeMessage  = "Time phải ở định dạng hh:mm:ss"
	searchFailedMessage = "Lỗi tìm kiếm tuyến: "
)

type detailBody struct {
	Detail string `json:"detail"`
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	logger.Error("internal server error", "error", err, "path", r.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	encoderErr := json.NewEncoder(w).Encode(detailBody{Detail: "internal server error"})
	if encoderErr != nil {
		logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// detailResponse sends {"detail": message} with the given status.
func (api *RestAPI) detailResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(detailBody{Detail: message})
	if err != nil {
		api.Logger.Error("failed to encode detail response", "error", err, "status", status)
	}
}

func (api *RestAPI) invalidTimeResponse(w http.ResponseWriter) {
	api.detailResponse(w, http.StatusBadRequest, invalidTimeMessage)
}

func (api *RestAPI) searchFailedResponse(w http.ResponseWriter, err error) {
	api.detailResponse(w, http.StatusInternalServerError, searchFailedMessage+err.Error())
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}
