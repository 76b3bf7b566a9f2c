package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
	"github.com/bz-technologies/helpdesk/internal/repository"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

// MinAnalysisRunes is the shortest description worth sending to the model.
const MinAnalysisRunes = 10

// TicketDraft is the state of the new-ticket form.
type TicketDraft struct {
	Title       string
	Description string
	Requester   string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	Suggestion  *domain.Suggestion
}

// NewTicketDraft returns an empty form with the default classification.
func NewTicketDraft() TicketDraft {
	return TicketDraft{
		Category: domain.TicketCategoryOther,
		Priority: domain.TicketPriorityLow,
	}
}

// FormService backs the new-ticket form.
type FormService struct {
	tickets    repository.TicketRepository
	triage     *assistant.Triage
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// FormDependencies bundles collaborators for FormService.
type FormDependencies struct {
	TicketRepo repository.TicketRepository
	Triage     *assistant.Triage
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewFormService constructs the service.
func NewFormService(deps FormDependencies) *FormService {
	s := &FormService{
		tickets:    deps.TicketRepo,
		triage:     deps.Triage,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if s.triage == nil {
		s.triage = assistant.NewTriage(nil, deps.Logger, nil)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Analyze asks the model to classify the draft. On success the suggestion
// is kept and category and priority are prefilled; otherwise the draft is
// left exactly as it was. Title, description and requester are never touched.
func (s *FormService) Analyze(ctx context.Context, draft *TicketDraft) bool {
	description := strings.TrimSpace(draft.Description)
	if utf8.RuneCountInString(description) < MinAnalysisRunes {
		return false
	}
	suggestion, ok := s.triage.Suggest(ctx, description)
	if !ok {
		return false
	}
	draft.Suggestion = suggestion
	draft.Category = suggestion.Category
	draft.Priority = suggestion.Priority
	return true
}

// Submit stores the draft as a new open ticket and resets the form.
func (s *FormService) Submit(ctx context.Context, draft *TicketDraft) (domain.Ticket, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Ticket{}, err
	}

	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Requester:   strings.TrimSpace(draft.Requester),
		Priority:    draft.Priority,
		Status:      domain.TicketStatusOpen,
		Category:    draft.Category,
		CreatedAt:   s.now(),
	}
	if draft.Suggestion != nil {
		ticket.AIAnalysis = draft.Suggestion.Summary
	}

	s.tickets.Create(ticket)
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTicketCreated,
		SubjectID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:      ticket.Title,
			Requester:  ticket.Requester,
			Priority:   ticket.Priority,
			Category:   ticket.Category,
			AIAssisted: draft.Suggestion != nil,
		},
	})

	*draft = NewTicketDraft()
	return ticket, nil
}

func validateDraft(draft *TicketDraft) error {
	missing := []string{}
	if strings.TrimSpace(draft.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(draft.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(draft.Requester) == "" {
		missing = append(missing, "requester")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("required fields missing", map[string]any{"fields": missing})
	}
	if !draft.Category.Valid() {
		return apperrors.NewValidationError("invalid category", map[string]any{"category": draft.Category})
	}
	if !draft.Priority.Valid() {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": draft.Priority})
	}
	return nil
}
