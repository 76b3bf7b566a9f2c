package service

import (
	"context"
	"sync"
	"time"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func recordAll(d events.Dispatcher, types ...events.EventType) *recordedEvents {
	rec := &recordedEvents{}
	for _, et := range types {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.events = append(rec.events, e)
			return nil
		})
	}
	return rec
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type analyzerFunc func(ctx context.Context, description string) (*domain.Suggestion, error)

func (f analyzerFunc) Analyze(ctx context.Context, description string) (*domain.Suggestion, error) {
	return f(ctx, description)
}

var fixedNow = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

func sampleTicket(id, title string, status domain.TicketStatus, priority domain.TicketPriority, category domain.TicketCategory) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		Title:       title,
		Description: title + " detalhes",
		Requester:   "Ana Souza",
		Status:      status,
		Priority:    priority,
		Category:    category,
		CreatedAt:   fixedNow,
	}
}
