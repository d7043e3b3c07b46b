package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartroom/booking-platform/internal/middleware"
	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// RoomHandler handles room directory endpoints.
type RoomHandler struct {
	rooms  *service.RoomService
	logger *logger.Logger
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(rooms *service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:  rooms,
		logger: log,
	}
}

// List handles GET /api/v1/rooms?q=
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := middleware.ValidateSearchQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rooms := h.rooms.List(q)
	writeJSON(w, http.StatusOK, &model.ListRoomsResponse{
		Rooms: rooms,
		Total: len(rooms),
	})
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateRoomID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, ok := h.rooms.Get(model.ID(id))
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// Refresh handles POST /api/v1/rooms/refresh
func (h *RoomHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.Refresh(r.Context()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	rooms := h.rooms.List("")
	writeJSON(w, http.StatusOK, &model.ListRoomsResponse{
		Rooms: rooms,
		Total: len(rooms),
	})
}
