package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/repository"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// DirectoryService exposes CRUD over the venue and customer directories.
// Both are opaque profile records with no lifecycle.
type DirectoryService struct {
	venues    repository.VenueRepository
	customers repository.CustomerRepository
}

// VenueInput describes venue payloads.
type VenueInput struct {
	VenueName      string
	City           *string
	Country        *string
	Address        *string
	GPSCoordinates *string
}

// CustomerInput describes customer payloads.
type CustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	Gender      *string
}

// NewDirectoryService constructs the service.
func NewDirectoryService(venueRepo repository.VenueRepository, customerRepo repository.CustomerRepository) *DirectoryService {
	return &DirectoryService{venues: venueRepo, customers: customerRepo}
}

// CreateVenue persists a new venue.
func (s *DirectoryService) CreateVenue(ctx context.Context, input VenueInput) (*domain.Venue, error) {
	if input.VenueName == "" {
		return nil, apperrors.NewValidationError("Missing required field: venueName", nil)
	}
	venue := &domain.Venue{
		ID:             domain.NewID(),
		VenueName:      input.VenueName,
		City:           input.City,
		Country:        input.Country,
		Address:        input.Address,
		GPSCoordinates: input.GPSCoordinates,
	}
	if err := s.venues.Insert(ctx, venue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// ReplaceVenue performs a full replace of a venue record.
func (s *DirectoryService) ReplaceVenue(ctx context.Context, venueID string, input VenueInput) (*domain.Venue, error) {
	if input.VenueName == "" {
		return nil, apperrors.NewValidationError("Missing required field: venueName", nil)
	}
	venue := &domain.Venue{
		ID:             venueID,
		VenueName:      input.VenueName,
		City:           input.City,
		Country:        input.Country,
		Address:        input.Address,
		GPSCoordinates: input.GPSCoordinates,
	}
	ok, err := s.venues.Replace(ctx, venue)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, apperrors.NewNotFound("Venue not found")
	}
	return s.GetVenue(ctx, venueID)
}

// GetVenue returns a single venue.
func (s *DirectoryService) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Venue not found")
		}
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// ListVenues returns all venues.
func (s *DirectoryService) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	list, err := s.venues.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// DeleteVenue removes a venue.
func (s *DirectoryService) DeleteVenue(ctx context.Context, venueID string) error {
	ok, err := s.venues.Delete(ctx, venueID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("Venue not found")
	}
	return nil
}

// CreateCustomer persists a new customer.
func (s *DirectoryService) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("Missing required fields: firstName, lastName, email", nil)
	}
	customer := &domain.Customer{
		ID:          domain.NewID(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Gender:      input.Gender,
	}
	if err := s.customers.Insert(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ReplaceCustomer performs a full replace of a customer record.
func (s *DirectoryService) ReplaceCustomer(ctx context.Context, customerID string, input CustomerInput) (*domain.Customer, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("Missing required fields: firstName, lastName, email", nil)
	}
	customer := &domain.Customer{
		ID:          customerID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Gender:      input.Gender,
	}
	ok, err := s.customers.Replace(ctx, customer)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, apperrors.NewNotFound("Customer not found")
	}
	return s.GetCustomer(ctx, customerID)
}

// GetCustomer returns a single customer.
func (s *DirectoryService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Customer not found")
		}
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ListCustomers returns all customers.
func (s *DirectoryService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// DeleteCustomer removes a customer.
func (s *DirectoryService) DeleteCustomer(ctx context.Context, customerID string) error {
	ok, err := s.customers.Delete(ctx, customerID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("Customer not found")
	}
	return nil
}
