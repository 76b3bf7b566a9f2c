package dto

import (
	"time"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// CreateTicketRequest payload. Suggestion carries the analysis the form
// accepted, if any.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Requester   string                `json:"requester"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Suggestion  *SuggestionResponse   `json:"suggestion"`
}

// UpdateTicketRequest replaces the editable fields of a ticket.
type UpdateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Requester   string                `json:"requester"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
}

// AnalyzeTicketRequest payload.
type AnalyzeTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Requester   string                `json:"requester"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// AnalyzeTicketResponse returns the draft after analysis. Suggestion is
// null when the model gave none.
type AnalyzeTicketResponse struct {
	Category   domain.TicketCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Suggestion *SuggestionResponse   `json:"suggestion"`
}

// SuggestionResponse is an AI triage result.
type SuggestionResponse struct {
	Category          domain.TicketCategory `json:"category"`
	Priority          domain.TicketPriority `json:"priority"`
	Summary           string                `json:"summary"`
	SuggestedSolution string                `json:"suggested_solution,omitempty"`
	SolutionHTML      string                `json:"solution_html,omitempty"`
}

// TicketResponse describes one ticket.
type TicketResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Requester     string                `json:"requester"`
	Priority      domain.TicketPriority `json:"priority"`
	PriorityLabel string                `json:"priority_label"`
	Status        domain.TicketStatus   `json:"status"`
	StatusLabel   string                `json:"status_label"`
	Category      domain.TicketCategory `json:"category"`
	CategoryLabel string                `json:"category_label"`
	CreatedAt     time.Time             `json:"created_at"`
	AIAnalysis    string                `json:"ai_analysis,omitempty"`
}

// DeleteChallengeResponse is the details block of the 428 answered before
// a delete.
type DeleteChallengeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Reason    string    `json:"reason,omitempty"`
}

// Details flattens the challenge into error details.
func (r DeleteChallengeResponse) Details() map[string]any {
	details := map[string]any{
		"token":      r.Token,
		"expires_at": r.ExpiresAt,
	}
	if r.Reason != "" {
		details["reason"] = r.Reason
	}
	return details
}
