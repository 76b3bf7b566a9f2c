// Package chat holds one support conversation: its transcript and the
// Idle/Sending state that gates user input.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/observability"
)

const (
	// WelcomeText is the first message of every transcript.
	WelcomeText = "Olá! Sou o assistente virtual de suporte da **BZ Technologies**. Como posso ajudar você hoje com problemas de TI?"
	// FallbackText replaces the reply whenever the model call fails.
	FallbackText = "Desculpe, tive um problema ao processar sua mensagem. Por favor, tente novamente ou abra um chamado manualmente."
)

var (
	ErrEmptyMessage = errors.New("chat: empty message")
	ErrBusy         = errors.New("chat: a message is already being sent")
	ErrClosed       = errors.New("chat: panel closed")
)

// State of a panel's input.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

// Panel is safe for concurrent use; at most one Send is in flight.
type Panel struct {
	id      string
	session assistant.ChatSession
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time

	mu         sync.Mutex
	messages   []domain.ChatMessage
	state      State
	closed     bool
	lastActive time.Time
}

// Option customises a Panel.
type Option func(*Panel)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Panel) { p.logger = logger }
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(p *Panel) { p.metrics = metrics }
}

func WithClock(now func() time.Time) Option {
	return func(p *Panel) { p.now = now }
}

// NewPanel seeds the transcript with the welcome message.
func NewPanel(session assistant.ChatSession, opts ...Option) *Panel {
	p := &Panel{
		id:      uuid.NewString(),
		session: session,
		logger:  zap.NewNop(),
		now:     time.Now,
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lastActive = p.now()
	p.messages = []domain.ChatMessage{p.message(domain.ChatRoleModel, WelcomeText)}
	return p
}

func (p *Panel) ID() string { return p.id }

// Messages returns a copy of the transcript.
func (p *Panel) Messages() []domain.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastActive is the time of the last send or creation.
func (p *Panel) LastActive() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastActive
}

// Send appends the user turn, waits for the model and appends its reply
// or the fallback text. Only ErrEmptyMessage, ErrBusy and ErrClosed are
// returned; model failures never escape.
func (p *Panel) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return domain.ChatMessage{}, ErrClosed
	}
	if p.state == StateSending {
		p.mu.Unlock()
		return domain.ChatMessage{}, ErrBusy
	}
	p.state = StateSending
	p.messages = append(p.messages, p.message(domain.ChatRoleUser, text))
	p.lastActive = p.now()
	p.mu.Unlock()

	reply, err := p.session.SendMessage(ctx, text)
	if err != nil {
		p.metrics.RecordAI("chat", assistant.ErrorKind(err))
		p.logger.Warn("chat reply failed",
			zap.String("panel_id", p.id),
			zap.String("kind", assistant.ErrorKind(err)),
			zap.Error(err))
		reply = FallbackText
	} else {
		p.metrics.RecordAI("chat", "ok")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	msg := p.message(domain.ChatRoleModel, reply)
	p.messages = append(p.messages, msg)
	p.state = StateIdle
	p.lastActive = p.now()
	return msg, nil
}

// Close disposes the model session. Further sends fail with ErrClosed.
func (p *Panel) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	return p.session.Close()
}

func (p *Panel) message(role domain.ChatRole, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: p.now(),
	}
}
