package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/service"
	"github.com/bz-technologies/helpdesk/internal/web"
)

// ShellPaths lists the navigable destinations.
var ShellPaths = map[string]string{
	"/":           web.PageDashboard,
	"/new-ticket": web.PageNewTicket,
	"/tickets":    web.PageTickets,
	"/chat":       web.PageChat,
}

type shellPage struct {
	Title       string
	Active      string
	ShowConsent bool
	Stats       domain.DashboardStats
	Tickets     []domain.Ticket
	Query       string
	Draft       service.TicketDraft
	Categories  []domain.TicketCategory
	Priorities  []domain.TicketPriority
	Statuses    []domain.TicketStatus
}

var pageTitles = map[string]string{
	web.PageDashboard: "Dashboard",
	web.PageNewTicket: "Novo Chamado",
	web.PageTickets:   "Meus Chamados",
	web.PageChat:      "Assistente IA",
}

// ShellHandler renders the HTML pages.
type ShellHandler struct {
	renderer  *web.Renderer
	dashboard *service.DashboardService
	list      *service.TicketListService
	consent   *ConsentHandler
	logger    *zap.Logger
}

// NewShellHandler constructs handler.
func NewShellHandler(renderer *web.Renderer, dashboard *service.DashboardService, list *service.TicketListService, consent *ConsentHandler, logger *zap.Logger) *ShellHandler {
	return &ShellHandler{renderer: renderer, dashboard: dashboard, list: list, consent: consent, logger: logger}
}

// Page returns the handler for one page.
func (h *ShellHandler) Page(page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// An unreadable consent flag shows the notice again.
		accepted, err := h.consent.Accepted(c)
		if err != nil {
			h.logger.Warn("consent lookup failed", zap.String("page", page), zap.Error(err))
			accepted = false
		}
		data := shellPage{
			Title:       pageTitles[page],
			Active:      page,
			ShowConsent: !accepted,
		}
		switch page {
		case web.PageDashboard:
			data.Stats = h.dashboard.Stats()
		case web.PageTickets:
			data.Query = c.Query("q")
			data.Tickets = h.list.List(data.Query)
			data.Categories = domain.Categories
			data.Priorities = domain.Priorities
			data.Statuses = domain.Statuses
		case web.PageNewTicket:
			data.Draft = service.NewTicketDraft()
			data.Categories = domain.Categories
			data.Priorities = domain.Priorities
		}
		c.Type("html", "utf-8")
		return h.renderer.Render(c, page, data)
	}
}

// Fallback sends unknown destinations to the dashboard.
func (h *ShellHandler) Fallback(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusFound)
}
