package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
	"github.com/bz-technologies/helpdesk/internal/repository"
)

func seededList(t *testing.T) (*TicketListService, repository.TicketRepository, *recordedEvents) {
	t.Helper()
	repo := repository.NewTicketRepository(
		sampleTicket("1", "Erro no login do ERP", domain.TicketStatusOpen, domain.TicketPriorityHigh, domain.TicketCategoryAccess),
		sampleTicket("2", "Impressora 2º andar offline", domain.TicketStatusInProgress, domain.TicketPriorityMedium, domain.TicketCategoryHardware),
		sampleTicket("3", "Instalação VS Code", domain.TicketStatusResolved, domain.TicketPriorityLow, domain.TicketCategorySoftware),
	)
	dispatcher := events.NewInMemoryDispatcher()
	rec := recordAll(dispatcher, events.EventTicketUpdated, events.EventTicketDeleted)
	return NewTicketListService(repo, dispatcher, nil), repo, rec
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func TestListFilters(t *testing.T) {
	svc, _, _ := seededList(t)

	assert.Equal(t, []string{"1", "2", "3"}, ids(svc.List("")))
	assert.Equal(t, []string{"2"}, ids(svc.List("IMPRESSORA")))
	assert.Equal(t, []string{"1"}, ids(svc.List("acesso")))
	assert.Equal(t, []string{"3"}, ids(svc.List("software")))
	assert.Empty(t, svc.List("nada disso"))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc, repo, rec := seededList(t)

	var prompts []string
	decline := ConfirmFunc(func(_ context.Context, prompt string) bool {
		prompts = append(prompts, prompt)
		return false
	})

	assert.False(t, svc.Delete(context.Background(), "2", decline))
	assert.Equal(t, []string{DeletePrompt}, prompts)
	assert.Len(t, repo.Snapshot(), 3)
	assert.False(t, svc.Delete(context.Background(), "2", nil))
	assert.Empty(t, rec.types())

	accept := ConfirmFunc(func(context.Context, string) bool { return true })
	assert.True(t, svc.Delete(context.Background(), "2", accept))
	assert.Equal(t, []string{"1", "3"}, ids(repo.Snapshot()))
	assert.Equal(t, []events.EventType{events.EventTicketDeleted}, rec.types())

	assert.False(t, svc.Delete(context.Background(), "missing", accept))
	assert.Len(t, repo.Snapshot(), 2)
}

func TestEdit(t *testing.T) {
	svc, repo, rec := seededList(t)

	edited, err := svc.Get("1")
	require.NoError(t, err)
	edited.Status = domain.TicketStatusResolved
	edited.Title = "Erro no login do ERP (resolvido)"

	applied, err := svc.Edit(context.Background(), edited)
	require.NoError(t, err)
	assert.True(t, applied)
	got, _ := repo.Get("1")
	assert.Equal(t, domain.TicketStatusResolved, got.Status)
	assert.Equal(t, []events.EventType{events.EventTicketUpdated}, rec.types())

	edited.ID = "missing"
	applied, err = svc.Edit(context.Background(), edited)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Len(t, rec.types(), 1)

	edited.ID = "1"
	edited.Status = "DONE"
	_, err = svc.Edit(context.Background(), edited)
	assert.Error(t, err)

	_, err = svc.Get("missing")
	assert.Error(t, err)
}
