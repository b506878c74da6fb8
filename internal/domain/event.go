package domain

import "time"

// Event describes a scheduled happening at a venue. Date and time fields are
// kept as strings ("2025-09-01", "20:00") to match the upstream data shape.
type Event struct {
	ID         string
	EventName  string
	VenueID    string
	StartDate  *string
	EndDate    *string
	StartTime  *string
	EndTime    *string
	Capacity   *int
	EventType  *string
	EventPrice *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
