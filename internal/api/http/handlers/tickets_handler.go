package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bz-technologies/helpdesk/internal/api/dto"
	"github.com/bz-technologies/helpdesk/internal/confirm"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/service"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

// ConfirmTokenHeader carries the token from a delete challenge.
const ConfirmTokenHeader = "X-Confirm-Token"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	form   *service.FormService
	list   *service.TicketListService
	tokens *confirm.TokenManager
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(form *service.FormService, list *service.TicketListService, tokens *confirm.TokenManager) *TicketsHandler {
	return &TicketsHandler{form: form, list: list, tokens: tokens}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": ticketResponses(h.list.List(c.Query("q")))})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.list.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AnalyzeTicket POST /api/tickets/analyze.
func (h *TicketsHandler) AnalyzeTicket(c *fiber.Ctx) error {
	var req dto.AnalyzeTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	draft := service.NewTicketDraft()
	draft.Title = req.Title
	draft.Description = req.Description
	draft.Requester = req.Requester
	if req.Category != "" {
		category, ok := domain.ParseCategory(string(req.Category))
		if !ok {
			return apperrors.NewValidationError("invalid category", map[string]any{"category": req.Category})
		}
		draft.Category = category
	}
	if req.Priority != "" {
		priority, ok := domain.ParsePriority(string(req.Priority))
		if !ok {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
		}
		draft.Priority = priority
	}

	h.form.Analyze(c.UserContext(), &draft)
	return c.JSON(fiber.Map{"data": dto.AnalyzeTicketResponse{
		Category:   draft.Category,
		Priority:   draft.Priority,
		Suggestion: suggestionResponse(draft.Suggestion),
	}})
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	draft := service.NewTicketDraft()
	draft.Title = req.Title
	draft.Description = req.Description
	draft.Requester = req.Requester
	draft.Suggestion = suggestionFromRequest(req.Suggestion)
	if req.Category != "" {
		draft.Category = parseCategory(req.Category)
	}
	if req.Priority != "" {
		draft.Priority = parsePriority(req.Priority)
	}

	ticket, err := h.form.Submit(c.UserContext(), &draft)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /api/tickets/:id. Unknown ids are ignored.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	id := c.Params("id")
	current, found := h.lookup(id)
	ticket := domain.Ticket{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Requester:   req.Requester,
		Category:    parseCategory(req.Category),
		Priority:    parsePriority(req.Priority),
		Status:      parseStatus(req.Status),
	}
	if found {
		ticket.AIAnalysis = current.AIAnalysis
	}
	if _, err := h.list.Edit(c.UserContext(), ticket); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteTicket DELETE /api/tickets/:id. Without a confirmation token the
// call answers 428 with the prompt and a token to repeat the request with.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	token := c.Get(ConfirmTokenHeader)

	var verifyErr error
	confirmer := service.ConfirmFunc(func(context.Context, string) bool {
		if token == "" {
			verifyErr = errMissingConfirmation
			return false
		}
		verifyErr = h.tokens.Verify(token, id)
		return verifyErr == nil
	})

	if h.list.Delete(c.UserContext(), id, confirmer) || verifyErr == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return h.challenge(id, verifyErr)
}

var errMissingConfirmation = errors.New("confirmation token missing")

func (h *TicketsHandler) challenge(id string, cause error) error {
	token, expiresAt, err := h.tokens.Issue(id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	challenge := dto.DeleteChallengeResponse{Token: token, ExpiresAt: expiresAt}
	if errors.Is(cause, confirm.ErrInvalidToken) {
		challenge.Reason = "invalid_token"
	}
	return apperrors.NewConfirmationRequired(service.DeletePrompt, challenge.Details())
}

func (h *TicketsHandler) lookup(id string) (domain.Ticket, bool) {
	t, err := h.list.Get(id)
	return t, err == nil
}

func parseCategory(c domain.TicketCategory) domain.TicketCategory {
	if parsed, ok := domain.ParseCategory(string(c)); ok {
		return parsed
	}
	return c
}

func parsePriority(p domain.TicketPriority) domain.TicketPriority {
	if parsed, ok := domain.ParsePriority(string(p)); ok {
		return parsed
	}
	return p
}

func parseStatus(s domain.TicketStatus) domain.TicketStatus {
	if parsed, ok := domain.ParseStatus(string(s)); ok {
		return parsed
	}
	return s
}
