package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnums(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
		ok   bool
	}{
		{name: "status code", raw: "IN_PROGRESS", want: TicketStatusInProgress, ok: true},
		{name: "status label", raw: "em andamento", want: TicketStatusInProgress, ok: true},
		{name: "priority label with accent", raw: "Crítica", want: TicketPriorityCritical, ok: true},
		{name: "category label", raw: "Acesso/Login", want: TicketCategoryAccess, ok: true},
		{name: "category code lower case", raw: " network ", want: TicketCategoryNetwork, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got any
			var ok bool
			switch tt.want.(type) {
			case TicketStatus:
				got, ok = ParseStatus(tt.raw)
			case TicketPriority:
				got, ok = ParsePriority(tt.raw)
			case TicketCategory:
				got, ok = ParseCategory(tt.raw)
			}
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ParsePriority("URGENT")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestEnumsValidAndLabelled(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
		assert.NotEmpty(t, s.Label())
	}
	for _, p := range Priorities {
		assert.True(t, p.Valid())
		assert.NotEmpty(t, p.Label())
	}
	for _, c := range Categories {
		assert.True(t, c.Valid())
		assert.NotEmpty(t, c.Label())
	}
	assert.False(t, TicketStatus("PENDING").Valid())
	assert.Equal(t, "Rede", TicketCategoryNetwork.Label())
}

func TestTicketPredicates(t *testing.T) {
	assert.True(t, Ticket{Status: TicketStatusClosed}.IsResolved())
	assert.True(t, Ticket{Status: TicketStatusResolved}.IsResolved())
	assert.False(t, Ticket{Status: TicketStatusInProgress}.IsResolved())
	assert.True(t, Ticket{Priority: TicketPriorityHigh}.IsHighPriority())
	assert.False(t, Ticket{Priority: TicketPriorityMedium}.IsHighPriority())
}
