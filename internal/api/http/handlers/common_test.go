package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/event-kit/ticketing-service/internal/api/http"
	"github.com/event-kit/ticketing-service/internal/api/http/handlers"
	"github.com/event-kit/ticketing-service/internal/auth"
	"github.com/event-kit/ticketing-service/internal/config"
	"github.com/event-kit/ticketing-service/internal/domain"
	"github.com/event-kit/ticketing-service/internal/events"
	"github.com/event-kit/ticketing-service/internal/observability"
	"github.com/event-kit/ticketing-service/internal/service"
)

const (
	seedCustomerID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	seedEventID    = "bbbbbbbbbbbbbbbbbbbbbbbb"
	seedTicketID   = "cccccccccccccccccccccccc"
	jwtTestSecret  = "test-secret"
)

// fakeTicketStore mirrors the database's conditional-write behavior so the
// full HTTP stack can run against memory.
type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

func newFakeTicketStore(seed ...domain.Ticket) *fakeTicketStore {
	s := &fakeTicketStore{tickets: make(map[string]domain.Ticket)}
	for _, t := range seed {
		s.tickets[t.ID] = t
	}
	return s
}

func (s *fakeTicketStore) Insert(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *fakeTicketStore) Replace(_ context.Context, ticket *domain.Ticket) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tickets[ticket.ID]
	if !ok {
		return false, nil
	}
	same := stored.CustomerID == ticket.CustomerID &&
		stored.EventID == ticket.EventID &&
		stored.TicketStatus == ticket.TicketStatus &&
		stored.AmountPaid == ticket.AmountPaid &&
		stored.PurchaseDate.Equal(ticket.PurchaseDate) &&
		samePtr(stored.PaymentMethod, ticket.PaymentMethod)
	if same {
		return false, nil
	}
	updated := *ticket
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	s.tickets[ticket.ID] = updated
	return true, nil
}

func (s *fakeTicketStore) MarkUsed(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tickets[id]
	if !ok || stored.TicketStatus != domain.TicketStatusActive {
		return false, nil
	}
	stored.TicketStatus = domain.TicketStatusUsed
	s.tickets[id] = stored
	return true, nil
}

func (s *fakeTicketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (s *fakeTicketStore) List(_ context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTicketStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return false, nil
	}
	delete(s.tickets, id)
	return true, nil
}

type fakeCustomerStore struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
}

func newFakeCustomerStore(ids ...string) *fakeCustomerStore {
	s := &fakeCustomerStore{customers: make(map[string]domain.Customer)}
	for _, id := range ids {
		s.customers[id] = domain.Customer{ID: id, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	}
	return s
}

func (s *fakeCustomerStore) Insert(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	s.customers[customer.ID] = *customer
	return nil
}

func (s *fakeCustomerStore) Replace(_ context.Context, customer *domain.Customer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; !ok {
		return false, nil
	}
	s.customers[customer.ID] = *customer
	return true, nil
}

func (s *fakeCustomerStore) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (s *fakeCustomerStore) List(_ context.Context) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCustomerStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return false, nil
	}
	delete(s.customers, id)
	return true, nil
}

func (s *fakeCustomerStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.customers[id]
	return ok, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	events map[string]domain.Event
}

func newFakeEventStore(ids ...string) *fakeEventStore {
	s := &fakeEventStore{events: make(map[string]domain.Event)}
	for _, id := range ids {
		s.events[id] = domain.Event{ID: id, EventName: "Launch Night", VenueID: "dddddddddddddddddddddddd"}
	}
	return s
}

func (s *fakeEventStore) Insert(_ context.Context, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	s.events[event.ID] = *event
	return nil
}

func (s *fakeEventStore) Replace(_ context.Context, event *domain.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return false, nil
	}
	s.events[event.ID] = *event
	return true, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (s *fakeEventStore) List(_ context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeEventStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *fakeEventStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.events[id]
	return ok, nil
}

type fakeVenueStore struct {
	mu     sync.Mutex
	venues map[string]domain.Venue
}

func newFakeVenueStore() *fakeVenueStore {
	return &fakeVenueStore{venues: make(map[string]domain.Venue)}
}

func (s *fakeVenueStore) Insert(_ context.Context, venue *domain.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	s.venues[venue.ID] = *venue
	return nil
}

func (s *fakeVenueStore) Replace(_ context.Context, venue *domain.Venue) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[venue.ID]; !ok {
		return false, nil
	}
	s.venues[venue.ID] = *venue
	return true, nil
}

func (s *fakeVenueStore) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.venues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (s *fakeVenueStore) List(_ context.Context) ([]domain.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeVenueStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[id]; !ok {
		return false, nil
	}
	delete(s.venues, id)
	return true, nil
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// testApp bundles the fiber app with the pieces tests poke at directly.
type testApp struct {
	app     *fiber.App
	tickets *fakeTicketStore
	tokens  *auth.TokenManager
}

// newTestApp stands up the full HTTP stack (middlewares, router, gate) over
// in-memory stores. Seeded tickets reference the seeded customer and event.
func newTestApp(t *testing.T, seed ...domain.Ticket) *testApp {
	t.Helper()

	tickets := newFakeTicketStore(seed...)
	customers := newFakeCustomerStore(seedCustomerID)
	eventStore := newFakeEventStore(seedEventID)
	venues := newFakeVenueStore()

	cfg := config.Config{
		Auth: config.AuthConfig{JWTSecret: jwtTestSecret, AccessTokenTTLMinutes: 60},
	}
	authService := service.NewAuthService(cfg)

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   tickets,
		CustomerRepo: customers,
		EventRepo:    eventStore,
		Dispatcher:   dispatcher,
	})
	eventService := service.NewEventService(eventStore)
	directoryService := service.NewDirectoryService(venues, customers)

	sessions := session.New()
	gate := auth.NewGate(sessions, authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)

	// test-only login endpoint; the real flow needs GitHub
	app.Get("/test/session-login", func(c *fiber.Ctx) error {
		user := auth.SessionUser{ID: "1", Username: "octocat"}
		if err := auth.SaveSessionUser(sessions, c, user); err != nil {
			return err
		}
		return c.SendStatus(http.StatusOK)
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler("event-ticketing-service", "test", nil, nil),
		Auth:      handlers.NewAuthHandler(authService, sessions),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Events:    handlers.NewEventsHandler(eventService),
		Venues:    handlers.NewVenuesHandler(directoryService),
		Customers: handlers.NewCustomersHandler(directoryService),
		Admin:     handlers.NewAdminHandler(metrics),
		Gate:      gate,
	})

	return &testApp{app: app, tickets: tickets, tokens: authService.TokenManager()}
}

func (ta *testApp) bearerToken(t *testing.T) string {
	t.Helper()
	token, _, err := ta.tokens.GenerateToken("1", "octocat")
	require.NoError(t, err)
	return token
}

// sessionCookie logs in through the test endpoint and returns the session
// cookie to attach to subsequent requests.
func (ta *testApp) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	res, err := ta.app.Test(newRequest(t, http.MethodGet, "/test/session-login", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	for _, cookie := range res.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func activeSeedTicket() domain.Ticket {
	return domain.Ticket{
		ID:           seedTicketID,
		CustomerID:   seedCustomerID,
		EventID:      seedEventID,
		TicketStatus: domain.TicketStatusActive,
		AmountPaid:   42.5,
		PurchaseDate: time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
	}
}
