package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// VenueRepository encapsulates venue persistence.
type VenueRepository interface {
	Insert(ctx context.Context, venue *domain.Venue) error
	Replace(ctx context.Context, venue *domain.Venue) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type venueRepository struct {
	pool *pgxpool.Pool
}

// NewVenueRepository instantiates repository.
func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &venueRepository{pool: pool}
}

func (r *venueRepository) Insert(ctx context.Context, venue *domain.Venue) error {
	const query = `
        INSERT INTO venues (id, venue_name, city, country, address, gps_coordinates)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		venue.ID,
		venue.VenueName,
		venue.City,
		venue.Country,
		venue.Address,
		venue.GPSCoordinates,
	).Scan(&venue.CreatedAt, &venue.UpdatedAt)
}

func (r *venueRepository) Replace(ctx context.Context, venue *domain.Venue) (bool, error) {
	const query = `
        UPDATE venues SET venue_name=$1, city=$2, country=$3, address=$4, gps_coordinates=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		venue.VenueName,
		venue.City,
		venue.Country,
		venue.Address,
		venue.GPSCoordinates,
		venue.ID,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	const query = `
        SELECT id, venue_name, city, country, address, gps_coordinates, created_at, updated_at
        FROM venues WHERE id=$1`
	var venue domain.Venue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.VenueName,
		&venue.City,
		&venue.Country,
		&venue.Address,
		&venue.GPSCoordinates,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	const query = `
        SELECT id, venue_name, city, country, address, gps_coordinates, created_at, updated_at
        FROM venues ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Venue
	for rows.Next() {
		var venue domain.Venue
		if err := rows.Scan(
			&venue.ID,
			&venue.VenueName,
			&venue.City,
			&venue.Country,
			&venue.Address,
			&venue.GPSCoordinates,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, venue)
	}
	return result, rows.Err()
}

func (r *venueRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
