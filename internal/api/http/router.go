package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/event-kit/ticketing-service/internal/api/http/handlers"
	"github.com/event-kit/ticketing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Tickets   *handlers.TicketsHandler
	Events    *handlers.EventsHandler
	Venues    *handlers.VenuesHandler
	Customers *handlers.CustomersHandler
	Admin     *handlers.AdminHandler
	Gate      *auth.Gate
}

// RegisterRoutes wires HTTP routes. Ticket reads are public; mutations sit
// behind the gate, as do the customer and admin groups.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Event ticketing API. Navigate to /health/live to check service status.")
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/login", cfg.Auth.Login)
	app.Get("/auth", cfg.Auth.Status)
	app.Get("/auth/github/callback", cfg.Auth.Callback)
	app.Get("/logout", cfg.Auth.Logout)

	tickets := app.Group("/tickets")
	tickets.Get("/", cfg.Tickets.GetAll)
	tickets.Get("/:id", cfg.Tickets.GetSingle)
	tickets.Post("/", cfg.Gate.Handle, cfg.Tickets.Create)
	// register the transition route before the parameterized replace route
	tickets.Put("/use/:id", cfg.Gate.Handle, cfg.Tickets.MarkUsed)
	tickets.Put("/:id", cfg.Gate.Handle, cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Gate.Handle, cfg.Tickets.Delete)

	events := app.Group("/events")
	events.Get("/", cfg.Events.GetAll)
	events.Get("/:id", cfg.Events.GetSingle)
	events.Post("/", cfg.Events.Create)
	events.Put("/:id", cfg.Events.Update)
	events.Delete("/:id", cfg.Events.Delete)

	venues := app.Group("/venues")
	venues.Get("/", cfg.Venues.GetAll)
	venues.Get("/:id", cfg.Venues.GetSingle)
	venues.Post("/", cfg.Venues.Create)
	venues.Put("/:id", cfg.Venues.Update)
	venues.Delete("/:id", cfg.Venues.Delete)

	customers := app.Group("/customers", cfg.Gate.Handle)
	customers.Get("/", cfg.Customers.GetAll)
	customers.Get("/:id", cfg.Customers.GetSingle)
	customers.Post("/", cfg.Customers.Create)
	customers.Put("/:id", cfg.Customers.Update)
	customers.Delete("/:id", cfg.Customers.Delete)

	admin := app.Group("/admin", cfg.Gate.Handle)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
