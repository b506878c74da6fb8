package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/api/dto"
	"github.com/event-kit/ticketing-service/internal/auth"
	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/events"
	"github.com/event-kit/ticketing-service/internal/service"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// GetAll GET /tickets.
func (h *TicketsHandler) GetAll(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// GetSingle GET /tickets/:id.
func (h *TicketsHandler) GetSingle(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid Ticket ID", nil)
	}
	ticket, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	ticket, err := h.service.Create(c.UserContext(), actorFromContext(c), ticketInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// Update PUT /tickets/:id (full replace).
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid Ticket ID", nil)
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	ticket, err := h.service.Replace(c.UserContext(), actorFromContext(c), id, ticketInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// MarkUsed PUT /tickets/use/:id.
func (h *TicketsHandler) MarkUsed(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid Ticket ID", nil)
	}
	if err := h.service.MarkUsed(c.UserContext(), actorFromContext(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket marked as used"})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid Ticket ID", nil)
	}
	if err := h.service.Delete(c.UserContext(), actorFromContext(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket deleted"})
}

func ticketInput(req dto.TicketRequest) service.TicketInput {
	return service.TicketInput{
		CustomerID:    req.CustomerID,
		EventID:       req.EventID,
		TicketStatus:  req.TicketStatus,
		AmountPaid:    req.AmountPaid,
		PurchaseDate:  req.PurchaseDate,
		PaymentMethod: req.PaymentMethod,
	}
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return events.Actor{ID: principal.ID, Username: principal.Username}
	}
	return events.Actor{}
}
