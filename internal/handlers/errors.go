package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/middlewares"
	"github.com/sbilibin2017/gw-feed/internal/services"
)

// Error categories returned in ErrorResponse.Error.
const (
	CategoryMissingField       = "missing_field"
	CategoryDuplicateUsername  = "duplicate_username"
	CategoryInvalidCredentials = "invalid_credentials"
	CategoryInvalidToken       = "invalid_token"
	CategoryUserNotFound       = "user_not_found"
	CategoryMalformedRequest   = "malformed_request"
	CategoryStoreFailure       = "store_failure"
	CategoryUnsupportedMedia   = "unsupported_media"
	CategoryFileTooLarge       = "file_too_large"
	CategoryNotFound           = "not_found"
)

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Machine-readable error category
	// default: missing_field
	Error string `json:"error"`

	// Human-readable detail
	// default: Missing required fields
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, ErrorResponse{Error: category, Message: message})
}

// writeServiceError maps a service error to a status and category. Unknown
// errors are logged with the request id and reported as a store failure
// without their text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrMissingField):
		writeError(w, http.StatusBadRequest, CategoryMissingField, "Missing required fields")
	case errors.Is(err, services.ErrMalformedRequest):
		writeError(w, http.StatusBadRequest, CategoryMalformedRequest, "Malformed request")
	case errors.Is(err, services.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, CategoryDuplicateUsername, "Username already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, CategoryInvalidCredentials, "Invalid username or password")
	case errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, CategoryInvalidToken, "Invalid token or session expired")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, CategoryUserNotFound, "User not found")
	case errors.Is(err, services.ErrFileNotFound):
		writeError(w, http.StatusNotFound, CategoryNotFound, "File not found")
	case errors.Is(err, services.ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, CategoryUnsupportedMedia, "Only image uploads are accepted")
	case errors.Is(err, services.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, CategoryFileTooLarge, "File too large")
	default:
		logger.Log.Errorw("internal server error",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, CategoryStoreFailure, "Internal server error")
	}
}
