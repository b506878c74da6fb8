package domain

import "time"

// Customer is a profile record; it carries no lifecycle of its own.
type Customer struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	Gender      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
