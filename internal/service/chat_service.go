package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/chat"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
	"github.com/bz-technologies/helpdesk/internal/observability"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

const (
	closeReasonClient   = "client"
	closeReasonIdle     = "idle"
	closeReasonShutdown = "shutdown"
	closeReasonHangup   = "disconnect"
)

// ErrSessionNotFound is returned for unknown or already closed panels.
var ErrSessionNotFound = apperrors.NewNotFound("chat session", nil)

// ChatService owns the open chat panels. Registered panels are addressed
// by id over REST; attached panels belong to a single websocket.
type ChatService struct {
	sessions   assistant.SessionFactory
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time

	mu     sync.Mutex
	panels map[string]*chat.Panel
}

// ChatDependencies bundles collaborators for ChatService.
type ChatDependencies struct {
	Sessions   assistant.SessionFactory
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Now        func() time.Time
}

func NewChatService(deps ChatDependencies) *ChatService {
	s := &ChatService{
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		now:        deps.Now,
		panels:     make(map[string]*chat.Panel),
	}
	if s.sessions == nil {
		s.sessions = assistant.Disabled{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Open creates a registered panel.
func (s *ChatService) Open(ctx context.Context) (*chat.Panel, error) {
	panel, err := s.Attach(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.panels[panel.ID()] = panel
	s.mu.Unlock()
	return panel, nil
}

// Attach creates a panel the caller owns; it must be passed to Release.
func (s *ChatService) Attach(ctx context.Context) (*chat.Panel, error) {
	session, err := s.sessions.NewSession(ctx)
	if err != nil {
		// The panel still works; every turn answers with the fallback text.
		s.logger.Warn("chat session unavailable", zap.String("kind", assistant.ErrorKind(err)), zap.Error(err))
		s.metrics.RecordAI("chat_open", assistant.ErrorKind(err))
		session = unavailableSession{err: err}
	}
	panel := chat.NewPanel(session,
		chat.WithLogger(s.logger),
		chat.WithMetrics(s.metrics),
		chat.WithClock(s.now))

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventChatSessionOpened,
		SubjectID: panel.ID(),
		Payload:   events.ChatSessionPayload{},
	})
	return panel, nil
}

// Release disposes a panel obtained from Attach.
func (s *ChatService) Release(ctx context.Context, panel *chat.Panel) {
	s.dispose(ctx, panel, closeReasonHangup)
}

// Panel looks up a registered panel.
func (s *ChatService) Panel(id string) (*chat.Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	panel, ok := s.panels[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return panel, nil
}

// Transcript returns the messages of a registered panel and its state.
func (s *ChatService) Transcript(id string) ([]domain.ChatMessage, chat.State, error) {
	panel, err := s.Panel(id)
	if err != nil {
		return nil, "", err
	}
	return panel.Messages(), panel.State(), nil
}

// Send forwards one user turn to a registered panel.
func (s *ChatService) Send(ctx context.Context, id, text string) (domain.ChatMessage, error) {
	panel, err := s.Panel(id)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return panel.Send(ctx, text)
}

// Close removes and disposes a registered panel.
func (s *ChatService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	panel, ok := s.panels[id]
	delete(s.panels, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.dispose(ctx, panel, closeReasonClient)
	return nil
}

// SweepIdle closes registered panels untouched for longer than maxIdle.
// Panels with a reply in flight are kept.
func (s *ChatService) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var stale []*chat.Panel
	for id, panel := range s.panels {
		if panel.State() == chat.StateIdle && panel.LastActive().Before(cutoff) {
			stale = append(stale, panel)
			delete(s.panels, id)
		}
	}
	s.mu.Unlock()

	for _, panel := range stale {
		s.dispose(ctx, panel, closeReasonIdle)
	}
	return len(stale)
}

// Shutdown closes every registered panel.
func (s *ChatService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	panels := s.panels
	s.panels = make(map[string]*chat.Panel)
	s.mu.Unlock()

	for _, panel := range panels {
		s.dispose(ctx, panel, closeReasonShutdown)
	}
}

// Count returns the number of registered panels.
func (s *ChatService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.panels)
}

func (s *ChatService) dispose(ctx context.Context, panel *chat.Panel, reason string) {
	if err := panel.Close(); err != nil {
		s.logger.Warn("chat session close failed", zap.String("panel_id", panel.ID()), zap.Error(err))
	}
	turns := 0
	for _, m := range panel.Messages() {
		if m.Role == domain.ChatRoleUser {
			turns++
		}
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventChatSessionClosed,
		SubjectID: panel.ID(),
		Payload:   events.ChatSessionPayload{Turns: turns, Reason: reason},
	})
}

// unavailableSession answers every turn with the error that prevented
// the session from opening.
type unavailableSession struct {
	err error
}

func (u unavailableSession) SendMessage(context.Context, string) (string, error) {
	return "", u.err
}

func (unavailableSession) Close() error { return nil }
