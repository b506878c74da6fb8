package dto

import (
	"time"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// VenueRequest payload for create and full-replace.
type VenueRequest struct {
	VenueName      string  `json:"venueName"`
	City           *string `json:"city"`
	Country        *string `json:"country"`
	Address        *string `json:"address"`
	GPSCoordinates *string `json:"gpsCoordinates"`
}

// VenueResponse mirrors the stored record on the wire.
type VenueResponse struct {
	ID             string    `json:"_id"`
	VenueName      string    `json:"venueName"`
	City           *string   `json:"city"`
	Country        *string   `json:"country"`
	Address        *string   `json:"address"`
	GPSCoordinates *string   `json:"gpsCoordinates"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CustomerRequest payload for create and full-replace.
type CustomerRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Gender      *string `json:"gender"`
}

// CustomerResponse mirrors the stored record on the wire.
type CustomerResponse struct {
	ID          string    `json:"_id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phoneNumber"`
	Gender      *string   `json:"gender"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewVenueResponse maps a domain venue onto the wire shape.
func NewVenueResponse(venue *domain.Venue) VenueResponse {
	return VenueResponse{
		ID:             venue.ID,
		VenueName:      venue.VenueName,
		City:           venue.City,
		Country:        venue.Country,
		Address:        venue.Address,
		GPSCoordinates: venue.GPSCoordinates,
		CreatedAt:      venue.CreatedAt,
		UpdatedAt:      venue.UpdatedAt,
	}
}

// NewCustomerResponse maps a domain customer onto the wire shape.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          customer.ID,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		Email:       customer.Email,
		PhoneNumber: customer.PhoneNumber,
		Gender:      customer.Gender,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}
