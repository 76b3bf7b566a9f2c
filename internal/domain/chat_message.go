package domain

import "time"

// ChatRole identifies who authored a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one entry of a chat transcript.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Timestamp time.Time
}
