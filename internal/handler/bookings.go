package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/middleware"
	"github.com/smartroom/booking-platform/internal/model"
	natsclient "github.com/smartroom/booking-platform/internal/nats"
	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// EventLog reads back published booking events.
type EventLog interface {
	GetEvents(ctx context.Context, roomID model.ID, afterSequence uint64, limit int) (*natsclient.EventPage, error)
}

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
	events   EventLog
	logger   *logger.Logger
}

// NewBookingHandler creates a new booking handler. events may be nil when no event bus is
// configured.
func NewBookingHandler(bookings *service.BookingService, events EventLog, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		events:   events,
		logger:   log,
	}
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings := h.bookings.List()
	writeJSON(w, http.StatusOK, &model.ListBookingsResponse{
		Bookings: bookings,
		Total:    len(bookings),
	})
}

// Get handles GET /api/v1/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateBookingID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookings.Get(id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.BookingForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = ""

	booking, err := h.bookings.Submit(r.Context(), form, model.SubmitModeCreate, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, &model.BookingResponse{
		Booking: booking,
		Message: "Booking created successfully",
	})
}

// Update handles PUT /api/v1/bookings/{id}. The room of an existing booking cannot change.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateBookingID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var form model.BookingForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = id

	booking, err := h.bookings.Submit(r.Context(), form, model.SubmitModeEdit, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, &model.BookingResponse{
		Booking: booking,
		Message: "Booking updated successfully",
	})
}

// Delete handles DELETE /api/v1/bookings/{id}?confirm=true
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateBookingID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	removed, err := h.bookings.Delete(r.Context(), id, func(model.Booking) bool {
		return confirmed
	}, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Events handles GET /api/v1/bookings/events?room=&after=&limit=
func (h *BookingHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeError(w, http.StatusNotImplemented, "event log is not enabled")
		return
	}

	q := r.URL.Query()
	roomID := q.Get("room")
	if roomID != "" {
		if err := middleware.ValidateRoomID(roomID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var after uint64
	if s := q.Get("after"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "after must be a sequence number")
			return
		}
		after = parsed
	}

	limit := 50
	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	page, err := h.events.GetEvents(r.Context(), model.ID(roomID), after, limit)
	if err != nil {
		h.logger.Error("failed to read booking events", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to read booking events")
		return
	}

	writeJSON(w, http.StatusOK, page)
}
