package events

import (
	"time"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketReplaced EventType = "ticket_replaced"
	EventTicketUsed     EventType = "ticket_used"
	EventTicketDeleted  EventType = "ticket_deleted"
)

// Actor identifies the authenticated caller that triggered the event.
type Actor struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CustomerID   string              `json:"customer_id"`
	EventID      string              `json:"event_id"`
	TicketStatus domain.TicketStatus `json:"ticket_status"`
	AmountPaid   float64             `json:"amount_paid"`
}

// TicketReplacedPayload payload.
type TicketReplacedPayload struct {
	CustomerID   string              `json:"customer_id"`
	EventID      string              `json:"event_id"`
	TicketStatus domain.TicketStatus `json:"ticket_status"`
}

// TicketUsedPayload payload.
type TicketUsedPayload struct {
	PreviousStatus domain.TicketStatus `json:"previous_status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct{}
