package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	store *service.TicketStore
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(store *service.TicketStore) *TicketsHandler {
	return &TicketsHandler{store: store}
}

// SubmitTicket POST /tickets.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	sessionID, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.store.Session(sessionID).Submit(c.UserContext(), req.Text, req.User)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets?search=&category=.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.store.Filter(c.Query("search"), c.Query("category", domain.CategoryAll))
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, ticketResponse(ticket))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func ticketResponse(ticket domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:         ticket.ID,
		User:       ticket.User,
		Text:       ticket.Text,
		CreatedAt:  ticket.CreatedAt,
		Status:     ticket.Status,
		Category:   ticket.Category,
		Confidence: ticket.Confidence,
		Priority:   ticket.Priority,
		Color:      ticket.Color,
		Response:   ticket.Response,
	}
}
