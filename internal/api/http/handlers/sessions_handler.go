package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/auth"
)

// SessionsHandler issues session tokens.
type SessionsHandler struct {
	tokens *auth.TokenManager
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(tokens *auth.TokenManager) *SessionsHandler {
	return &SessionsHandler{tokens: tokens}
}

// CreateSession POST /sessions.
func (h *SessionsHandler) CreateSession(c *fiber.Ctx) error {
	sessionID := uuid.NewString()
	token, expiresAt, err := h.tokens.GenerateToken(sessionID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SessionResponse{
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}
