package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/api/dto"
	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/service"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// CustomersHandler exposes customer CRUD endpoints. The whole group sits
// behind the authentication gate.
type CustomersHandler struct {
	service *service.DirectoryService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(directory *service.DirectoryService) *CustomersHandler {
	return &CustomersHandler{service: directory}
}

// GetAll GET /customers.
func (h *CustomersHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.service.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewCustomerResponse(&list[i]))
	}
	return c.JSON(items)
}

// GetSingle GET /customers/:id.
func (h *CustomersHandler) GetSingle(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	customer, err := h.service.GetCustomer(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Create POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	customer, err := h.service.CreateCustomer(c.UserContext(), customerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// Update PUT /customers/:id (full replace).
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	customer, err := h.service.ReplaceCustomer(c.UserContext(), id, customerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !domain.IsValidID(id) {
		return apperrors.NewValidationError("Invalid ID.", nil)
	}
	if err := h.service.DeleteCustomer(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Customer deleted"})
}

func customerInput(req dto.CustomerRequest) service.CustomerInput {
	return service.CustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
	}
}
