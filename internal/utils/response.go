package utils

import (
	"encoding/json"
	"net/http"

	"github.com/apex/log"
)

// ErrorResponse is the envelope written for every failed request
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

// WriteAppError writes err as an error envelope with the matching status
func WriteAppError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	WriteJSONResponse(w, appErr.Status, ErrorResponse{
		Success: false,
		Error:   appErr.Kind,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// WriteErrorResponse writes an error envelope of the given kind
func WriteErrorResponse(w http.ResponseWriter, kind ErrorKind, message string, details any) {
	WriteAppError(w, NewAppError(kind, message, details))
}
