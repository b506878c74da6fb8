package dto

import (
	"time"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// EventRequest payload for create and full-replace.
type EventRequest struct {
	EventName  string   `json:"eventName"`
	VenueID    string   `json:"venueId"`
	StartDate  *string  `json:"startDate"`
	EndDate    *string  `json:"endDate"`
	StartTime  *string  `json:"startTime"`
	EndTime    *string  `json:"endTime"`
	Capacity   *int     `json:"capacity"`
	EventType  *string  `json:"eventType"`
	EventPrice *float64 `json:"eventPrice"`
}

// EventResponse mirrors the stored record on the wire.
type EventResponse struct {
	ID         string    `json:"_id"`
	EventName  string    `json:"eventName"`
	VenueID    string    `json:"venueId"`
	StartDate  *string   `json:"startDate"`
	EndDate    *string   `json:"endDate"`
	StartTime  *string   `json:"startTime"`
	EndTime    *string   `json:"endTime"`
	Capacity   *int      `json:"capacity"`
	EventType  *string   `json:"eventType"`
	EventPrice *float64  `json:"eventPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewEventResponse maps a domain event onto the wire shape.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:         event.ID,
		EventName:  event.EventName,
		VenueID:    event.VenueID,
		StartDate:  event.StartDate,
		EndDate:    event.EndDate,
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		Capacity:   event.Capacity,
		EventType:  event.EventType,
		EventPrice: event.EventPrice,
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
	}
}
