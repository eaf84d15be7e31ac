package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and sends the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Handlers with route-specific wording check their own sentinels first; this
// mapping is the shared fallback, so internal error details never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, ErrMsgChallengeNotFoundHTTP
	case errors.Is(err, domain.ErrStatsNotFound):
		return http.StatusNotFound, ErrMsgStatsNotFoundHTTP
	case errors.Is(err, domain.ErrNotParticipant):
		return http.StatusForbidden, ErrMsgChallengeAccessDenied
	case errors.Is(err, domain.ErrNotRecipient):
		return http.StatusForbidden, ErrMsgOnlyRecipientResponds
	case errors.Is(err, domain.ErrSelfOnly):
		return http.StatusForbidden, ErrMsgSelfOnlyHTTP
	case errors.Is(err, domain.ErrChallengeNotPending):
		return http.StatusBadRequest, ErrMsgChallengeNotPendingHTTP
	case errors.Is(err, domain.ErrChallengeNotOpen):
		return http.StatusBadRequest, ErrMsgChallengeNotOpenHTTP
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, ErrMsgChallengeNotResolvable
	case errors.Is(err, domain.ErrNumberOutside):
		return http.StatusBadRequest, ErrMsgNumberOutsideRange
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputHTTP
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	}
	return http.StatusInternalServerError, ErrMsgInternalServerError
}
