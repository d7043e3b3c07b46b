package handler

import (
	"net/http"

	"github.com/smartroom/booking-platform/internal/middleware"
	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// AssistantHandler handles the booking assistant chat.
type AssistantHandler struct {
	assistant *service.AssistantService
	logger    *logger.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(assistant *service.AssistantService, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		logger:    log,
	}
}

// List handles GET /api/v1/assistant/messages
func (h *AssistantHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	writeJSON(w, http.StatusOK, &model.ListChatMessagesResponse{
		Messages: h.assistant.History(sessionID),
	})
}

// Ask handles POST /api/v1/assistant/messages
// A failed recommendation still answers 200 with an apology message.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req model.AskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assistant.Ask(r.Context(), middleware.GetSessionID(r.Context()), req.Query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
