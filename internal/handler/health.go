package handler

import (
	"net/http"
	"time"
)

// ConnectionChecker reports whether a backing connection is up.
type ConnectionChecker interface {
	IsConnected() bool
}

// DirectoryStatus reports when the room directory was last loaded.
type DirectoryStatus interface {
	FetchedAt() time.Time
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	natsClient ConnectionChecker
	rooms      DirectoryStatus
}

// NewHealthHandler creates a new health handler. natsClient is nil when the event bus is
// disabled.
func NewHealthHandler(natsClient ConnectionChecker, rooms DirectoryStatus) *HealthHandler {
	return &HealthHandler{
		natsClient: natsClient,
		rooms:      rooms,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready. An empty room directory does not make the service unready;
// it is reported so operators can see the degraded state.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.natsClient != nil && !h.natsClient.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	resp := map[string]interface{}{
		"status":      "ready",
		"roomsLoaded": false,
	}
	if h.rooms != nil {
		if at := h.rooms.FetchedAt(); !at.IsZero() {
			resp["roomsLoaded"] = true
			resp["roomsFetchedAt"] = at
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
