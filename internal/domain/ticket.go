package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusActive    TicketStatus = "active"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// IsValid reports whether the status is a known lifecycle state.
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusActive, TicketStatusUsed, TicketStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition out of the status is exposed.
// The only transition in scope is active -> used.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusUsed || s == TicketStatusCancelled
}

// Ticket is the aggregate for purchased admissions.
type Ticket struct {
	ID            string
	CustomerID    string
	EventID       string
	TicketStatus  TicketStatus
	AmountPaid    float64
	PurchaseDate  time.Time
	PaymentMethod *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
