package handlers

import (
	"github.com/bz-technologies/helpdesk/internal/api/dto"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/markup"
)

func ticketResponse(t domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Requester:     t.Requester,
		Priority:      t.Priority,
		PriorityLabel: t.Priority.Label(),
		Status:        t.Status,
		StatusLabel:   t.Status.Label(),
		Category:      t.Category,
		CategoryLabel: t.Category.Label(),
		CreatedAt:     t.CreatedAt,
		AIAnalysis:    t.AIAnalysis,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	out := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketResponse(t))
	}
	return out
}

func suggestionResponse(s *domain.Suggestion) *dto.SuggestionResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SuggestionResponse{
		Category:          s.Category,
		Priority:          s.Priority,
		Summary:           s.Summary,
		SuggestedSolution: s.SuggestedSolution,
	}
	if s.SuggestedSolution != "" {
		resp.SolutionHTML = string(markup.Render(s.SuggestedSolution))
	}
	return resp
}

func suggestionFromRequest(s *dto.SuggestionResponse) *domain.Suggestion {
	if s == nil || s.Summary == "" {
		return nil
	}
	return &domain.Suggestion{
		Category:          s.Category,
		Priority:          s.Priority,
		Summary:           s.Summary,
		SuggestedSolution: s.SuggestedSolution,
	}
}

func chatMessageResponse(m domain.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Text:      m.Text,
		HTML:      string(markup.Render(m.Text)),
		Timestamp: m.Timestamp,
	}
}

func chatMessageResponses(msgs []domain.ChatMessage) []dto.ChatMessageResponse {
	out := make([]dto.ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chatMessageResponse(m))
	}
	return out
}
