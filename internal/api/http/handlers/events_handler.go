package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/api/dto"
	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/service"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// EventsHandler exposes event CRUD endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// GetAll GET /events.
func (h *EventsHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewEventResponse(&list[i]))
	}
	return c.JSON(items)
}

// GetSingle GET /events/:id.
func (h *EventsHandler) GetSingle(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// Create POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	event, err := h.service.Create(c.UserContext(), eventInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEventResponse(event))
}

// Update PUT /events/:id (full replace).
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	event, err := h.service.Replace(c.UserContext(), id, eventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// Delete DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Event deleted successfully."})
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		EventName:  req.EventName,
		VenueID:    req.VenueID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Capacity:   req.Capacity,
		EventType:  req.EventType,
		EventPrice: req.EventPrice,
	}
}
