package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/events"
)

const defaultNotificationBacklog = 50

// Notification is a short user-facing message about a ticket change.
type Notification struct {
	ID        string           `json:"id"`
	Type      events.EventType `json:"type"`
	SubjectID string           `json:"subject_id"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// NotificationService turns domain events into notifications and logs them.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu      sync.RWMutex
	recent  []Notification
	backlog int
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		backlog:    defaultNotificationBacklog,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.handleTicketDeleted)
	n.dispatcher.Subscribe(events.EventChatSessionOpened, n.handleChatSession)
	n.dispatcher.Subscribe(events.EventChatSessionClosed, n.handleChatSession)
}

// Recent returns up to limit notifications, newest first.
func (n *NotificationService) Recent(limit int) []Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if limit <= 0 || limit > len(n.recent) {
		limit = len(n.recent)
	}
	out := make([]Notification, limit)
	copy(out, n.recent[:limit])
	return out
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.push(event, "Chamado criado com sucesso!")
	return nil
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketUpdated", zap.String("ticket_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.push(event, "Chamado atualizado.")
	return nil
}

func (n *NotificationService) handleTicketDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketDeleted", zap.String("ticket_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.push(event, "Chamado excluído.")
	return nil
}

func (n *NotificationService) handleChatSession(ctx context.Context, event events.Event) error {
	n.logger.Debug(string(event.Type), zap.String("panel_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) push(event events.Event, message string) {
	note := Notification{
		ID:        event.ID,
		Type:      event.Type,
		SubjectID: event.SubjectID,
		Message:   message,
		Timestamp: event.Timestamp,
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append([]Notification{note}, n.recent...)
	if len(n.recent) > n.backlog {
		n.recent = n.recent[:n.backlog]
	}
}
