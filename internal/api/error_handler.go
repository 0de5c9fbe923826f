package api

import (
	"encoding/json"
	"net/http"

	"github.com/echokeys/echokeys/internal/errors"
	"github.com/echokeys/echokeys/internal/logger"
)

// errorBody is the wire shape the client expects for all failures.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Status:  "error",
		Message: appErr.Message,
	})
}
