package domain

import "time"

// Venue is a location record referenced by events.
type Venue struct {
	ID             string
	VenueName      string
	City           *string
	Country        *string
	Address        *string
	GPSCoordinates *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
