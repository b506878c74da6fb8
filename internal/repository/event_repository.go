package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) error
	// Replace reports false when the row is missing or unchanged.
	Replace(ctx context.Context, event *domain.Event) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Insert(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (id, event_name, venue_id, start_date, end_date, start_time, end_time, capacity, event_type, event_price)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.EventName,
		event.VenueID,
		event.StartDate,
		event.EndDate,
		event.StartTime,
		event.EndTime,
		event.Capacity,
		event.EventType,
		event.EventPrice,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Replace(ctx context.Context, event *domain.Event) (bool, error) {
	const query = `
        UPDATE events SET event_name=$1, venue_id=$2, start_date=$3, end_date=$4, start_time=$5,
            end_time=$6, capacity=$7, event_type=$8, event_price=$9, updated_at=NOW()
        WHERE id=$10
          AND (event_name, venue_id, start_date, end_date, start_time, end_time, capacity, event_type, event_price)
              IS DISTINCT FROM ($1, $2, $3, $4, $5, $6, $7::int, $8, $9::numeric)`
	cmd, err := r.pool.Exec(ctx, query,
		event.EventName,
		event.VenueID,
		event.StartDate,
		event.EndDate,
		event.StartTime,
		event.EndTime,
		event.Capacity,
		event.EventType,
		event.EventPrice,
		event.ID,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, event_name, venue_id, start_date, end_date, start_time, end_time, capacity, event_type, event_price, created_at, updated_at
        FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.EventName,
		&event.VenueID,
		&event.StartDate,
		&event.EndDate,
		&event.StartTime,
		&event.EndTime,
		&event.Capacity,
		&event.EventType,
		&event.EventPrice,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
        SELECT id, event_name, venue_id, start_date, end_date, start_time, end_time, capacity, event_type, event_price, created_at, updated_at
        FROM events ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *eventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.EventName,
			&event.VenueID,
			&event.StartDate,
			&event.EndDate,
			&event.StartTime,
			&event.EndTime,
			&event.Capacity,
			&event.EventType,
			&event.EventPrice,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
