package events

import (
	"time"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketUpdated     EventType = "ticket_updated"
	EventTicketDeleted     EventType = "ticket_deleted"
	EventChatSessionOpened EventType = "chat_session_opened"
	EventChatSessionClosed EventType = "chat_session_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title      string                `json:"title"`
	Requester  string                `json:"requester"`
	Priority   domain.TicketPriority `json:"priority"`
	Category   domain.TicketCategory `json:"category"`
	AIAssisted bool                  `json:"ai_assisted"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status   domain.TicketStatus   `json:"status"`
	Priority domain.TicketPriority `json:"priority"`
	Category domain.TicketCategory `json:"category"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title string `json:"title"`
}

// ChatSessionPayload payload.
type ChatSessionPayload struct {
	Turns  int    `json:"turns"`
	Reason string `json:"reason,omitempty"`
}
