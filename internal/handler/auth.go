// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/middleware"
	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// AuthHandler issues bearer tokens. Login is simulated: any non-empty credentials succeed.
type AuthHandler struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(secret string, ttl time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateCredentials(req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(req.Email)
	token, expiresAt, err := h.issueToken(email)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.logger.Info("user logged in", zap.String("user_id", email))
	writeJSON(w, http.StatusOK, &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     email,
	})
}

func (h *AuthHandler) issueToken(email string) (string, time.Time, error) {
	return middleware.IssueToken(h.secret, email, h.ttl, h.now())
}
