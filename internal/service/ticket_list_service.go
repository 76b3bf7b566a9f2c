package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
	"github.com/bz-technologies/helpdesk/internal/repository"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

// DeletePrompt is shown before a ticket is removed.
const DeletePrompt = "Tem certeza que deseja excluir este chamado? Esta ação não pode ser desfeita."

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// TicketListService backs the ticket list view.
type TicketListService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketListService constructs the service.
func NewTicketListService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketListService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// List returns the tickets, newest first, whose title, requester or
// category contains query. An empty query matches everything.
func (s *TicketListService) List(query string) []domain.Ticket {
	all := s.tickets.Snapshot()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}
	out := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t domain.Ticket, query string) bool {
	for _, field := range []string{t.Title, t.Requester, string(t.Category), t.Category.Label()} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Get returns one ticket.
func (s *TicketListService) Get(id string) (domain.Ticket, error) {
	ticket, ok := s.tickets.Get(id)
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// Edit saves an edited ticket. It reports whether a stored ticket was
// replaced; unknown ids are ignored.
func (s *TicketListService) Edit(ctx context.Context, ticket domain.Ticket) (bool, error) {
	if strings.TrimSpace(ticket.Title) == "" {
		return false, apperrors.NewValidationError("title is required", map[string]any{"field": "title"})
	}
	if !ticket.Status.Valid() || !ticket.Priority.Valid() || !ticket.Category.Valid() {
		return false, apperrors.NewValidationError("invalid classification", map[string]any{
			"status":   ticket.Status,
			"priority": ticket.Priority,
			"category": ticket.Category,
		})
	}
	ticket.Title = strings.TrimSpace(ticket.Title)

	if !s.tickets.Update(ticket) {
		s.logger.Debug("edit ignored for unknown ticket", zap.String("ticket_id", ticket.ID))
		return false, nil
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTicketUpdated,
		SubjectID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			Status:   ticket.Status,
			Priority: ticket.Priority,
			Category: ticket.Category,
		},
	})
	return true, nil
}

// Delete removes a ticket once confirmer approves DeletePrompt. It
// reports whether a ticket was removed.
func (s *TicketListService) Delete(ctx context.Context, id string, confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		return false
	}
	existing, found := s.tickets.Get(id)
	if !s.tickets.Delete(id) {
		s.logger.Debug("delete ignored for unknown ticket", zap.String("ticket_id", id))
		return false
	}
	payload := events.TicketDeletedPayload{}
	if found {
		payload.Title = existing.Title
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTicketDeleted,
		SubjectID: id,
		Payload:   payload,
	})
	return true
}
