package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/chat"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
)

type echoSession struct {
	closed *int
}

func (e echoSession) SendMessage(_ context.Context, text string) (string, error) {
	return "eco: " + text, nil
}

func (e echoSession) Close() error {
	*e.closed++
	return nil
}

type echoFactory struct {
	closed int
	err    error
}

func (f *echoFactory) NewSession(context.Context) (assistant.ChatSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return echoSession{closed: &f.closed}, nil
}

func TestChatServiceLifecycle(t *testing.T) {
	factory := &echoFactory{}
	dispatcher := events.NewInMemoryDispatcher()
	rec := recordAll(dispatcher, events.EventChatSessionOpened, events.EventChatSessionClosed)
	svc := NewChatService(ChatDependencies{Sessions: factory, Dispatcher: dispatcher})

	panel, err := svc.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count())

	msgs, state, err := svc.Transcript(panel.ID())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.WelcomeText, msgs[0].Text)
	assert.Equal(t, chat.StateIdle, state)

	reply, err := svc.Send(context.Background(), panel.ID(), "oi")
	require.NoError(t, err)
	assert.Equal(t, "eco: oi", reply.Text)

	require.NoError(t, svc.Close(context.Background(), panel.ID()))
	assert.Equal(t, 1, factory.closed)
	assert.ErrorIs(t, svc.Close(context.Background(), panel.ID()), ErrSessionNotFound)
	_, err = svc.Send(context.Background(), panel.ID(), "oi")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, []events.EventType{events.EventChatSessionOpened, events.EventChatSessionClosed}, rec.types())
	closedPayload := rec.events[1].Payload.(events.ChatSessionPayload)
	assert.Equal(t, 1, closedPayload.Turns)
}

func TestChatServiceFallbackWhenSessionCannotOpen(t *testing.T) {
	svc := NewChatService(ChatDependencies{Sessions: &echoFactory{err: errors.New("quota")}})

	panel, err := svc.Open(context.Background())
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), panel.ID(), "oi")
	require.NoError(t, err)
	assert.Equal(t, chat.FallbackText, reply.Text)
	assert.Equal(t, domain.ChatRoleModel, reply.Role)
}

func TestChatServiceSweepIdle(t *testing.T) {
	now := fixedNow
	factory := &echoFactory{}
	svc := NewChatService(ChatDependencies{Sessions: factory, Now: func() time.Time { return now }})

	stale, err := svc.Open(context.Background())
	require.NoError(t, err)
	now = now.Add(20 * time.Minute)
	fresh, err := svc.Open(context.Background())
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, svc.SweepIdle(context.Background(), 30*time.Minute))

	_, err = svc.Panel(stale.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Panel(fresh.ID())
	assert.NoError(t, err)
	assert.Equal(t, 1, factory.closed)

	svc.Shutdown(context.Background())
	assert.Zero(t, svc.Count())
	assert.Equal(t, 2, factory.closed)
}

func TestChatServiceAttachIsNotRegistered(t *testing.T) {
	factory := &echoFactory{}
	svc := NewChatService(ChatDependencies{Sessions: factory})

	panel, err := svc.Attach(context.Background())
	require.NoError(t, err)
	assert.Zero(t, svc.Count())
	_, err = svc.Panel(panel.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	svc.Release(context.Background(), panel)
	assert.Equal(t, 1, factory.closed)
}
