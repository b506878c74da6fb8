package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/repository"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// EventService exposes CRUD over event records. Validation is shape-only;
// events carry no lifecycle.
type EventService struct {
	events repository.EventRepository
}

// EventInput describes event creation/replacement payloads.
type EventInput struct {
	EventName  string
	VenueID    string
	StartDate  *string
	EndDate    *string
	StartTime  *string
	EndTime    *string
	Capacity   *int
	EventType  *string
	EventPrice *float64
}

// NewEventService constructs the service.
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{events: eventRepo}
}

// Create persists a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*domain.Event, error) {
	event, err := validateEvent(input)
	if err != nil {
		return nil, err
	}
	event.ID = domain.NewID()

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// Replace performs a full replace. An identical replacement is reported the
// same way as a missing record.
func (s *EventService) Replace(ctx context.Context, eventID string, input EventInput) (*domain.Event, error) {
	event, err := validateEvent(input)
	if err != nil {
		return nil, err
	}
	event.ID = eventID

	changed, err := s.events.Replace(ctx, event)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !changed {
		return nil, apperrors.NewNotFound("Event not found or no change made.")
	}
	return s.Get(ctx, eventID)
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Event not found")
		}
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, eventID string) error {
	ok, err := s.events.Delete(ctx, eventID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("Event not found.")
	}
	return nil
}

func validateEvent(input EventInput) (*domain.Event, error) {
	if input.EventName == "" || input.VenueID == "" {
		return nil, apperrors.NewValidationError("Missing required fields: eventName, venueId", nil)
	}
	if !domain.IsValidID(input.VenueID) {
		return nil, apperrors.NewValidationError("venueId is not a valid ID", nil)
	}
	return &domain.Event{
		EventName:  input.EventName,
		VenueID:    strings.ToLower(input.VenueID),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Capacity:   input.Capacity,
		EventType:  input.EventType,
		EventPrice: input.EventPrice,
	}, nil
}
