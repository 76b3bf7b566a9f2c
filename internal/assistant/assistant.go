// Package assistant defines the provider-neutral contract for the hosted
// language model: one-shot triage of ticket descriptions and multi-turn
// chat sessions. Vendor SDK types never cross this boundary.
package assistant

import (
	"context"
	"errors"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// ErrDisabled is returned by every call when no model credential is configured.
var ErrDisabled = errors.New("assistant: hosted model not configured")

// ErrEmptyReply is returned when the model answers without any text.
var ErrEmptyReply = errors.New("assistant: empty model reply")

// Analyzer classifies a ticket description.
type Analyzer interface {
	Analyze(ctx context.Context, description string) (*domain.Suggestion, error)
}

// ChatSession is one conversation with the model. Prior turns are kept by
// the implementation and influence later replies. A session is not safe
// for concurrent SendMessage calls.
type ChatSession interface {
	SendMessage(ctx context.Context, text string) (string, error)
	Close() error
}

// SessionFactory opens chat sessions.
type SessionFactory interface {
	NewSession(ctx context.Context) (ChatSession, error)
}

// Disabled stands in for the hosted model when it is not configured.
type Disabled struct{}

func (Disabled) Analyze(context.Context, string) (*domain.Suggestion, error) {
	return nil, ErrDisabled
}

func (Disabled) NewSession(context.Context) (ChatSession, error) {
	return disabledSession{}, nil
}

type disabledSession struct{}

func (disabledSession) SendMessage(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (disabledSession) Close() error { return nil }
