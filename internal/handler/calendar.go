package handler

import (
	"net/http"

	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// CalendarHandler serves the day timeline and the dashboard summary.
type CalendarHandler struct {
	calendar *service.CalendarService
	stats    *service.StatsService
	logger   *logger.Logger
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(calendar *service.CalendarService, stats *service.StatsService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		stats:    stats,
		logger:   log,
	}
}

// Day handles GET /api/v1/calendar?date=YYYY-MM-DD
func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := h.calendar.Day(r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, day)
}

// Stats handles GET /api/v1/stats
func (h *CalendarHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Summary())
}
