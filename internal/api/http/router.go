package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/bz-technologies/helpdesk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Tickets       *handlers.TicketsHandler
	Dashboard     *handlers.DashboardHandler
	Chat          *handlers.ChatHandler
	Consent       *handlers.ConsentHandler
	Notifications *handlers.NotificationsHandler
	Shell         *handlers.ShellHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Get("/dashboard", cfg.Dashboard.Stats)
	api.Get("/dashboard/report", cfg.Dashboard.Report)

	tickets := api.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Post("/analyze", cfg.Tickets.AnalyzeTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)

	sessions := api.Group("/chat/sessions")
	sessions.Post("/", cfg.Chat.OpenSession)
	sessions.Get("/:id", cfg.Chat.GetSession)
	sessions.Post("/:id/messages", cfg.Chat.SendMessage)
	sessions.Delete("/:id", cfg.Chat.CloseSession)

	api.Get("/consent", cfg.Consent.Get)
	api.Post("/consent", cfg.Consent.Accept)
	api.Get("/notifications", cfg.Notifications.List)
	api.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	app.Get("/ws/chat", cfg.Chat.Upgrade, websocket.New(cfg.Chat.Stream))

	for path, page := range handlers.ShellPaths {
		app.Get(path, cfg.Shell.Page(page))
	}
	app.Use(cfg.Shell.Fallback)
}
