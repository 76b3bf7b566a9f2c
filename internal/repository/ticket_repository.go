package repository

import (
	"sync"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// TicketRepository holds the ordered ticket collection. The newest ticket
// is first. Mutations are plain collection edits: they never fail and
// never notify anyone.
type TicketRepository interface {
	Create(ticket domain.Ticket)
	Update(ticket domain.Ticket) bool
	Delete(id string) bool
	Get(id string) (domain.Ticket, bool)
	Snapshot() []domain.Ticket
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketRepository instantiates an empty in-memory repository. Seed
// tickets are given oldest-last, the same order Snapshot returns.
func NewTicketRepository(seed ...domain.Ticket) TicketRepository {
	tickets := make([]domain.Ticket, 0, len(seed))
	for _, t := range seed {
		if indexOf(tickets, t.ID) >= 0 {
			continue
		}
		tickets = append(tickets, t)
	}
	return &memoryTicketRepository{tickets: tickets}
}

// Create inserts the ticket at the front. The caller owns identifier
// generation; a ticket whose id is already stored replaces the old entry
// and moves to the front so ids stay unique.
func (r *memoryTicketRepository) Create(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Ticket, 0, len(r.tickets)+1)
	next = append(next, ticket)
	for _, t := range r.tickets {
		if t.ID != ticket.ID {
			next = append(next, t)
		}
	}
	r.tickets = next
}

// Update replaces the mutable fields of the ticket with the same id.
// CreatedAt is kept from the stored entry. Unknown ids are ignored.
func (r *memoryTicketRepository) Update(ticket domain.Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.tickets, ticket.ID)
	if idx < 0 {
		return false
	}
	ticket.CreatedAt = r.tickets[idx].CreatedAt
	r.tickets[idx] = ticket
	return true
}

// Delete removes the ticket with the given id. Unknown ids are ignored.
func (r *memoryTicketRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexOf(r.tickets, id)
	if idx < 0 {
		return false
	}
	next := make([]domain.Ticket, 0, len(r.tickets)-1)
	next = append(next, r.tickets[:idx]...)
	next = append(next, r.tickets[idx+1:]...)
	r.tickets = next
	return true
}

func (r *memoryTicketRepository) Get(id string) (domain.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := indexOf(r.tickets, id)
	if idx < 0 {
		return domain.Ticket{}, false
	}
	return r.tickets[idx], true
}

// Snapshot returns a copy of the full ordered collection.
func (r *memoryTicketRepository) Snapshot() []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out
}

func indexOf(tickets []domain.Ticket, id string) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}
