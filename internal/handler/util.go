package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	var (
		vErr       *service.ValidationError
		pastErr    *service.PastTimeError
		overlapErr *service.OverlapError
		fetchErr   *service.FetchError
	)

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": vErr.FieldErrors,
		})
	case errors.As(err, &pastErr):
		writeError(w, http.StatusUnprocessableEntity, "cannot book a time in the past")
	case errors.As(err, &overlapErr):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":         overlapErr.Error(),
			"conflictingId": overlapErr.ConflictingID,
		})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, service.ErrConfirmationRequired):
		writeError(w, http.StatusPreconditionRequired, "deletion must be confirmed with ?confirm=true")
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, "room directory unavailable")
	default:
		log.Error("unhandled service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
