package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/api/dto"
	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/service"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// VenuesHandler exposes venue CRUD endpoints.
type VenuesHandler struct {
	service *service.DirectoryService
}

// NewVenuesHandler constructs handler.
func NewVenuesHandler(directory *service.DirectoryService) *VenuesHandler {
	return &VenuesHandler{service: directory}
}

// GetAll GET /venues.
func (h *VenuesHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.service.ListVenues(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.VenueResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewVenueResponse(&list[i]))
	}
	return c.JSON(items)
}

// GetSingle GET /venues/:id.
func (h *VenuesHandler) GetSingle(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	venue, err := h.service.GetVenue(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVenueResponse(venue))
}

// Create POST /venues.
func (h *VenuesHandler) Create(c *fiber.Ctx) error {
	var req dto.VenueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	venue, err := h.service.CreateVenue(c.UserContext(), venueInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewVenueResponse(venue))
}

// Update PUT /venues/:id (full replace).
func (h *VenuesHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	var req dto.VenueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	venue, err := h.service.ReplaceVenue(c.UserContext(), id, venueInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVenueResponse(venue))
}

// Delete DELETE /venues/:id.
func (h *VenuesHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	if err := h.service.DeleteVenue(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Venue deleted"})
}

func venueInput(req dto.VenueRequest) service.VenueInput {
	return service.VenueInput{
		VenueName:      req.VenueName,
		City:           req.City,
		Country:        req.Country,
		Address:        req.Address,
		GPSCoordinates: req.GPSCoordinates,
	}
}
