package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
	"github.com/smartroom/booking-platform/pkg/metrics"
)

// StreamHandler handles SSE streaming endpoints.
type StreamHandler struct {
	calendar  *service.CalendarService
	heartbeat time.Duration
	logger    *logger.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(calendar *service.CalendarService, heartbeat time.Duration, log *logger.Logger) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &StreamHandler{
		calendar:  calendar,
		heartbeat: heartbeat,
		logger:    log,
	}
}

// TimeIndicator handles GET /api/v1/calendar/now/stream?date=YYYY-MM-DD
// It pushes a time_indicator event immediately and on every calendar tick, with heartbeats
// in between, until the client disconnects.
func (h *StreamHandler) TimeIndicator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	day, err := h.calendar.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// The server write timeout would otherwise cut the stream.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	events := h.calendar.Watch(ctx, day)

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("SSE client disconnected", zap.String("date", day.Format("2006-01-02")))
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sendSSEEvent(w, flusher, "time_indicator", event); err != nil {
				h.logger.Error("failed to send time indicator", zap.Error(err))
				sendSSEEvent(w, flusher, "error", &model.ErrorEvent{
					Code:    "encode_error",
					Message: "failed to encode time indicator",
				})
				return
			}

		case <-heartbeat.C:
			sendSSEEvent(w, flusher, "heartbeat", &model.HeartbeatEvent{
				Timestamp: time.Now(),
			})
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()

	return nil
}
