package dto

import (
	"time"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// TicketRequest payload for create and full-replace.
type TicketRequest struct {
	CustomerID    string     `json:"customerId"`
	EventID       string     `json:"eventId"`
	TicketStatus  string     `json:"ticketStatus"`
	AmountPaid    *float64   `json:"amountPaid"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	PaymentMethod *string    `json:"paymentMethod"`
}

// TicketResponse mirrors the stored record on the wire.
type TicketResponse struct {
	ID            string              `json:"_id"`
	CustomerID    string              `json:"customerId"`
	EventID       string              `json:"eventId"`
	TicketStatus  domain.TicketStatus `json:"ticketStatus"`
	AmountPaid    float64             `json:"amountPaid"`
	PurchaseDate  time.Time           `json:"purchaseDate"`
	PaymentMethod *string             `json:"paymentMethod"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// MessageResponse is the generic `{message}` body.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewTicketResponse maps a domain ticket onto the wire shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		CustomerID:    ticket.CustomerID,
		EventID:       ticket.EventID,
		TicketStatus:  ticket.TicketStatus,
		AmountPaid:    ticket.AmountPaid,
		PurchaseDate:  ticket.PurchaseDate,
		PaymentMethod: ticket.PaymentMethod,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
