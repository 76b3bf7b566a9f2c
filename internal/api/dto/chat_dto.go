package dto

import (
	"time"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// ChatMessageRequest is one user turn.
type ChatMessageRequest struct {
	Text string `json:"text"`
}

// ChatMessageResponse is a transcript entry. HTML is the rendered text.
type ChatMessageResponse struct {
	ID        string          `json:"id"`
	Role      domain.ChatRole `json:"role"`
	Text      string          `json:"text"`
	HTML      string          `json:"html"`
	Timestamp time.Time       `json:"timestamp"`
}

// ChatSessionResponse describes a panel.
type ChatSessionResponse struct {
	ID       string                `json:"id"`
	Pending  bool                  `json:"pending"`
	Messages []ChatMessageResponse `json:"messages"`
}

// ChatFrame is exchanged over the websocket.
type ChatFrame struct {
	Type    string               `json:"type"`
	Message *ChatMessageResponse `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
}
