package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-kit/ticketing-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	// Replace performs a full replace of all non-identity fields. It reports
	// false when the row is missing or the replacement changed nothing; the
	// two conditions are indistinguishable at this layer.
	Replace(ctx context.Context, ticket *domain.Ticket) (bool, error)
	// MarkUsed transitions the ticket to used only if it is currently active.
	// The condition and the write are a single statement so concurrent calls
	// cannot both succeed.
	MarkUsed(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, customer_id, event_id, ticket_status, amount_paid, purchase_date, payment_method)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.CustomerID,
		ticket.EventID,
		ticket.TicketStatus,
		ticket.AmountPaid,
		ticket.PurchaseDate,
		ticket.PaymentMethod,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Replace(ctx context.Context, ticket *domain.Ticket) (bool, error) {
	const query = `
        UPDATE tickets SET customer_id=$1, event_id=$2, ticket_status=$3, amount_paid=$4,
            purchase_date=$5, payment_method=$6, updated_at=NOW()
        WHERE id=$7
          AND (customer_id, event_id, ticket_status, amount_paid, purchase_date, payment_method)
              IS DISTINCT FROM ($1, $2, $3, $4::numeric, $5::timestamptz, $6)`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.CustomerID,
		ticket.EventID,
		ticket.TicketStatus,
		ticket.AmountPaid,
		ticket.PurchaseDate,
		ticket.PaymentMethod,
		ticket.ID,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	const query = `
        UPDATE tickets SET ticket_status=$1, updated_at=NOW()
        WHERE id=$2 AND ticket_status=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.TicketStatusUsed, id, domain.TicketStatusActive)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, customer_id, event_id, ticket_status, amount_paid, purchase_date, payment_method, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.CustomerID,
		&ticket.EventID,
		&ticket.TicketStatus,
		&ticket.AmountPaid,
		&ticket.PurchaseDate,
		&ticket.PaymentMethod,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, customer_id, event_id, ticket_status, amount_paid, purchase_date, payment_method, created_at, updated_at
        FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CustomerID,
			&ticket.EventID,
			&ticket.TicketStatus,
			&ticket.AmountPaid,
			&ticket.PurchaseDate,
			&ticket.PaymentMethod,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
