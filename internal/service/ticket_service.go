package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/events"
	"github.com/event-kit/ticketing-service/internal/repository"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// TicketService owns the ticket state machine and its validation rules,
// independent of how the request arrived.
type TicketService struct {
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	events     repository.EventRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	CustomerRepo repository.CustomerRepository
	EventRepo    repository.EventRepository
	Dispatcher   events.Dispatcher
}

// TicketInput describes ticket creation/replacement payloads. References are
// required; everything else defaults.
type TicketInput struct {
	CustomerID    string
	EventID       string
	TicketStatus  string
	AmountPaid    *float64
	PurchaseDate  *time.Time
	PaymentMethod *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		customers:  deps.CustomerRepo,
		events:     deps.EventRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates references and defaults, then persists a new ticket.
func (s *TicketService) Create(ctx context.Context, actor events.Actor, input TicketInput) (*domain.Ticket, error) {
	ticket, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	ticket.ID = domain.NewID()

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			CustomerID:   ticket.CustomerID,
			EventID:      ticket.EventID,
			TicketStatus: ticket.TicketStatus,
			AmountPaid:   ticket.AmountPaid,
		},
	})
	return ticket, nil
}

// Replace performs a full replace of all fields except identity. An identical
// replacement is reported the same way as a missing record; the conflation is
// part of the contract.
func (s *TicketService) Replace(ctx context.Context, actor events.Actor, ticketID string, input TicketInput) (*domain.Ticket, error) {
	ticket, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	ticket.ID = ticketID

	changed, err := s.tickets.Replace(ctx, ticket)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !changed {
		return nil, apperrors.NewNotFound("Ticket not found or no change")
	}

	stored, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketReplaced,
		TicketID: ticketID,
		Actor:    actor,
		Payload: events.TicketReplacedPayload{
			CustomerID:   stored.CustomerID,
			EventID:      stored.EventID,
			TicketStatus: stored.TicketStatus,
		},
	})
	return stored, nil
}

// MarkUsed is the only exposed transition: active -> used. The check and
// write are one conditional update so concurrent calls cannot both succeed.
func (s *TicketService) MarkUsed(ctx context.Context, actor events.Actor, ticketID string) error {
	ok, err := s.tickets.MarkUsed(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if ok {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketUsed,
			TicketID: ticketID,
			Actor:    actor,
			Payload:  events.TicketUsedPayload{PreviousStatus: domain.TicketStatusActive},
		})
		return nil
	}

	// The conditional write did not fire; read back to say why.
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Ticket not found")
		}
		return apperrors.MapError(err)
	}
	switch ticket.TicketStatus {
	case domain.TicketStatusUsed:
		return apperrors.NewConflict("Ticket has already been used")
	case domain.TicketStatusCancelled:
		return apperrors.NewConflict("Ticket has been cancelled")
	default:
		return apperrors.NewInternalError(errors.New("ticket status changed during update"))
	}
}

// Delete removes the record unconditionally once found.
func (s *TicketService) Delete(ctx context.Context, actor events.Actor, ticketID string) error {
	ok, err := s.tickets.Delete(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("Ticket not found")
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		Actor:    actor,
		Payload:  events.TicketDeletedPayload{},
	})
	return nil
}

// Get returns a single ticket.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns all tickets.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// validate applies the shared Create/Replace rules and returns a normalized
// ticket with defaults filled in. The format check always runs before any
// store access.
func (s *TicketService) validate(ctx context.Context, input TicketInput) (*domain.Ticket, error) {
	if input.CustomerID == "" || input.EventID == "" {
		return nil, apperrors.NewValidationError("customerId and eventId are required", nil)
	}
	if !domain.IsValidID(input.CustomerID) || !domain.IsValidID(input.EventID) {
		return nil, apperrors.NewValidationError("customerId or eventId is not a valid ID", nil)
	}

	customerID := strings.ToLower(input.CustomerID)
	eventID := strings.ToLower(input.EventID)

	if ok, err := s.customers.Exists(ctx, customerID); err != nil {
		return nil, apperrors.MapError(err)
	} else if !ok {
		return nil, apperrors.NewValidationError("customerId does not reference an existing customer", nil)
	}
	if ok, err := s.events.Exists(ctx, eventID); err != nil {
		return nil, apperrors.MapError(err)
	} else if !ok {
		return nil, apperrors.NewValidationError("eventId does not reference an existing event", nil)
	}

	status := domain.TicketStatusActive
	if input.TicketStatus != "" {
		status = domain.TicketStatus(input.TicketStatus)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("ticketStatus must be one of active, used, cancelled", nil)
		}
	}

	amountPaid := 0.0
	if input.AmountPaid != nil {
		if *input.AmountPaid < 0 {
			return nil, apperrors.NewValidationError("amountPaid must be non-negative", nil)
		}
		amountPaid = *input.AmountPaid
	}

	purchaseDate := time.Now().UTC()
	if input.PurchaseDate != nil {
		purchaseDate = input.PurchaseDate.UTC()
	}

	return &domain.Ticket{
		CustomerID:    customerID,
		EventID:       eventID,
		TicketStatus:  status,
		AmountPaid:    amountPaid,
		PurchaseDate:  purchaseDate,
		PaymentMethod: input.PaymentMethod,
	}, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
