package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/events"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

// fakeTicketRepo reproduces the store's conditional-write semantics in memory
// so the state machine can be exercised without a database.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

func newFakeTicketRepo(seed ...domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[string]domain.Ticket)}
	for _, t := range seed {
		repo.tickets[t.ID] = t
	}
	return repo
}

func (r *fakeTicketRepo) Insert(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Replace(_ context.Context, ticket *domain.Ticket) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return false, nil
	}
	if stored.CustomerID == ticket.CustomerID &&
		stored.EventID == ticket.EventID &&
		stored.TicketStatus == ticket.TicketStatus &&
		stored.AmountPaid == ticket.AmountPaid &&
		stored.PurchaseDate.Equal(ticket.PurchaseDate) &&
		equalStringPtr(stored.PaymentMethod, ticket.PaymentMethod) {
		return false, nil
	}
	updated := *ticket
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.tickets[ticket.ID] = updated
	return true, nil
}

func (r *fakeTicketRepo) MarkUsed(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[id]
	if !ok || stored.TicketStatus != domain.TicketStatusActive {
		return false, nil
	}
	stored.TicketStatus = domain.TicketStatusUsed
	stored.UpdatedAt = time.Now().UTC()
	r.tickets[id] = stored
	return true, nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (r *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return false, nil
	}
	delete(r.tickets, id)
	return true, nil
}

type fakeCustomerRepo struct{ ids map[string]bool }

func (r *fakeCustomerRepo) Insert(context.Context, *domain.Customer) error { return nil }
func (r *fakeCustomerRepo) Replace(context.Context, *domain.Customer) (bool, error) {
	return false, nil
}
func (r *fakeCustomerRepo) GetByID(context.Context, string) (*domain.Customer, error) {
	return nil, pgx.ErrNoRows
}
func (r *fakeCustomerRepo) List(context.Context) ([]domain.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Delete(context.Context, string) (bool, error)   { return false, nil }
func (r *fakeCustomerRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

type fakeEventRepo struct{ ids map[string]bool }

func (r *fakeEventRepo) Insert(context.Context, *domain.Event) error           { return nil }
func (r *fakeEventRepo) Replace(context.Context, *domain.Event) (bool, error)  { return false, nil }
func (r *fakeEventRepo) GetByID(context.Context, string) (*domain.Event, error) {
	return nil, pgx.ErrNoRows
}
func (r *fakeEventRepo) List(context.Context) ([]domain.Event, error)    { return nil, nil }
func (r *fakeEventRepo) Delete(context.Context, string) (bool, error)    { return false, nil }
func (r *fakeEventRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

const (
	testCustomerID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	testEventID    = "bbbbbbbbbbbbbbbbbbbbbbbb"
	testTicketID   = "cccccccccccccccccccccccc"
)

func newTestTicketService(repo *fakeTicketRepo) (*TicketService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(TicketDependencies{
		TicketRepo:   repo,
		CustomerRepo: &fakeCustomerRepo{ids: map[string]bool{testCustomerID: true}},
		EventRepo:    &fakeEventRepo{ids: map[string]bool{testEventID: true}},
		Dispatcher:   dispatcher,
	})
	return svc, dispatcher
}

func activeTicket() domain.Ticket {
	return domain.Ticket{
		ID:           testTicketID,
		CustomerID:   testCustomerID,
		EventID:      testEventID,
		TicketStatus: domain.TicketStatusActive,
		AmountPaid:   42.5,
		PurchaseDate: time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestTicketServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		repo := newFakeTicketRepo()
		svc, _ := newTestTicketService(repo)

		before := time.Now().UTC()
		ticket, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: testCustomerID,
			EventID:    testEventID,
		})
		require.NoError(t, err)

		assert.True(t, domain.IsValidID(ticket.ID))
		assert.Equal(t, domain.TicketStatusActive, ticket.TicketStatus)
		assert.Equal(t, 0.0, ticket.AmountPaid)
		assert.Nil(t, ticket.PaymentMethod)
		assert.False(t, ticket.PurchaseDate.Before(before))

		stored, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.ID, stored.ID)
	})

	t.Run("canonicalizes reference case", func(t *testing.T) {
		repo := newFakeTicketRepo()
		svc, _ := newTestTicketService(repo)

		ticket, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: "AAAAAAAAAAAAAAAAAAAAAAAA",
			EventID:    "BBBBBBBBBBBBBBBBBBBBBBBB",
		})
		require.NoError(t, err)
		assert.Equal(t, testCustomerID, ticket.CustomerID)
		assert.Equal(t, testEventID, ticket.EventID)
	})

	t.Run("rejects missing references", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Create(ctx, events.Actor{}, TicketInput{EventID: testEventID})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("rejects malformed references before store access", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: "not-an-id",
			EventID:    testEventID,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		assert.Contains(t, err.Error(), "not a valid ID")
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: "dddddddddddddddddddddddd",
			EventID:    testEventID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "existing customer")
	})

	t.Run("rejects unknown event", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: testCustomerID,
			EventID:    "dddddddddddddddddddddddd",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "existing event")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID:   testCustomerID,
			EventID:      testEventID,
			TicketStatus: "expired",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		amount := -1.0
		_, err := svc.Create(ctx, events.Actor{}, TicketInput{
			CustomerID: testCustomerID,
			EventID:    testEventID,
			AmountPaid: &amount,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-negative")
	})

	t.Run("publishes creation event", func(t *testing.T) {
		svc, dispatcher := newTestTicketService(newFakeTicketRepo())

		var got []events.Event
		dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, e events.Event) error {
			got = append(got, e)
			return nil
		})

		_, err := svc.Create(ctx, events.Actor{ID: "u1", Username: "octocat"}, TicketInput{
			CustomerID: testCustomerID,
			EventID:    testEventID,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "octocat", got[0].Actor.Username)
	})
}

func TestTicketServiceReplace(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces all fields", func(t *testing.T) {
		repo := newFakeTicketRepo(activeTicket())
		svc, _ := newTestTicketService(repo)

		amount := 99.0
		method := "card"
		ticket, err := svc.Replace(ctx, events.Actor{}, testTicketID, TicketInput{
			CustomerID:    testCustomerID,
			EventID:       testEventID,
			TicketStatus:  string(domain.TicketStatusCancelled),
			AmountPaid:    &amount,
			PaymentMethod: &method,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusCancelled, ticket.TicketStatus)
		assert.Equal(t, 99.0, ticket.AmountPaid)
		require.NotNil(t, ticket.PaymentMethod)
		assert.Equal(t, "card", *ticket.PaymentMethod)
	})

	t.Run("missing ticket reported as not found", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		_, err := svc.Replace(ctx, events.Actor{}, testTicketID, TicketInput{
			CustomerID: testCustomerID,
			EventID:    testEventID,
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
		assert.Contains(t, err.Error(), "Ticket not found or no change")
	})

	t.Run("identical replacement reported the same as missing", func(t *testing.T) {
		seed := activeTicket()
		repo := newFakeTicketRepo(seed)
		svc, _ := newTestTicketService(repo)

		amount := seed.AmountPaid
		purchase := seed.PurchaseDate
		_, err := svc.Replace(ctx, events.Actor{}, testTicketID, TicketInput{
			CustomerID:   seed.CustomerID,
			EventID:      seed.EventID,
			TicketStatus: string(seed.TicketStatus),
			AmountPaid:   &amount,
			PurchaseDate: &purchase,
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})

	t.Run("validation failures surface before the store is touched", func(t *testing.T) {
		repo := newFakeTicketRepo(activeTicket())
		svc, _ := newTestTicketService(repo)

		_, err := svc.Replace(ctx, events.Actor{}, testTicketID, TicketInput{
			CustomerID: "bogus",
			EventID:    testEventID,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

		stored, err := repo.GetByID(ctx, testTicketID)
		require.NoError(t, err)
		assert.Equal(t, 42.5, stored.AmountPaid)
	})
}

func TestTicketServiceMarkUsed(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions active to used", func(t *testing.T) {
		repo := newFakeTicketRepo(activeTicket())
		svc, dispatcher := newTestTicketService(repo)

		var published int
		dispatcher.Subscribe(events.EventTicketUsed, func(context.Context, events.Event) error {
			published++
			return nil
		})

		require.NoError(t, svc.MarkUsed(ctx, events.Actor{}, testTicketID))

		stored, err := repo.GetByID(ctx, testTicketID)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusUsed, stored.TicketStatus)
		assert.Equal(t, 1, published)
	})

	t.Run("used ticket is a conflict", func(t *testing.T) {
		seed := activeTicket()
		seed.TicketStatus = domain.TicketStatusUsed
		svc, _ := newTestTicketService(newFakeTicketRepo(seed))

		err := svc.MarkUsed(ctx, events.Actor{}, testTicketID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", domainCode(t, err))
		assert.Contains(t, err.Error(), "already been used")
	})

	t.Run("cancelled ticket is a conflict", func(t *testing.T) {
		seed := activeTicket()
		seed.TicketStatus = domain.TicketStatusCancelled
		svc, _ := newTestTicketService(newFakeTicketRepo(seed))

		err := svc.MarkUsed(ctx, events.Actor{}, testTicketID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", domainCode(t, err))
		assert.Contains(t, err.Error(), "cancelled")
	})

	t.Run("missing ticket is not found", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		err := svc.MarkUsed(ctx, events.Actor{}, testTicketID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})

	t.Run("concurrent calls succeed exactly once", func(t *testing.T) {
		repo := newFakeTicketRepo(activeTicket())
		svc, _ := newTestTicketService(repo)

		const callers = 32
		errs := make([]error, callers)
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				errs[i] = svc.MarkUsed(ctx, events.Actor{}, testTicketID)
			}(i)
		}
		wg.Wait()

		var successes, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				successes++
			default:
				assert.Equal(t, "CONFLICT", domainCode(t, err))
				conflicts++
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, callers-1, conflicts)
	})
}

func TestTicketServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes regardless of status", func(t *testing.T) {
		seed := activeTicket()
		seed.TicketStatus = domain.TicketStatusUsed
		repo := newFakeTicketRepo(seed)
		svc, _ := newTestTicketService(repo)

		require.NoError(t, svc.Delete(ctx, events.Actor{}, testTicketID))

		_, err := repo.GetByID(ctx, testTicketID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("missing ticket is not found", func(t *testing.T) {
		svc, _ := newTestTicketService(newFakeTicketRepo())

		err := svc.Delete(ctx, events.Actor{}, testTicketID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})
}

func TestTicketServiceGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTicketService(newFakeTicketRepo(activeTicket()))

	ticket, err := svc.Get(ctx, testTicketID)
	require.NoError(t, err)
	assert.Equal(t, testTicketID, ticket.ID)

	_, err = svc.Get(ctx, "dddddddddddddddddddddddd")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
