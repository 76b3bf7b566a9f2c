package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/repository"
)

func TestStats(t *testing.T) {
	repo := repository.NewTicketRepository(
		sampleTicket("1", "a", domain.TicketStatusOpen, domain.TicketPriorityCritical, domain.TicketCategoryNetwork),
		sampleTicket("2", "b", domain.TicketStatusOpen, domain.TicketPriorityLow, domain.TicketCategoryNetwork),
		sampleTicket("3", "c", domain.TicketStatusResolved, domain.TicketPriorityHigh, domain.TicketCategoryHardware),
	)
	stats := NewDashboardService(repo).Stats()

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 2, stats.HighPriority)
	assert.Equal(t, 33, stats.ResolutionRate)

	require.Len(t, stats.ByStatus, len(domain.Statuses))
	assert.Equal(t, domain.StatusCount{Status: domain.TicketStatusOpen, Count: 2}, stats.ByStatus[0])
	assert.Equal(t, domain.StatusCount{Status: domain.TicketStatusClosed, Count: 0}, stats.ByStatus[3])
	require.Len(t, stats.ByCategory, len(domain.Categories))
	assert.Equal(t, domain.CategoryCount{Category: domain.TicketCategoryNetwork, Count: 2}, stats.ByCategory[2])
}

func TestStatsEmptyStore(t *testing.T) {
	stats := NewDashboardService(repository.NewTicketRepository()).Stats()
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ResolutionRate)
}

func TestExportReport(t *testing.T) {
	repo := repository.NewTicketRepository(
		sampleTicket("1", "Erro no login", domain.TicketStatusClosed, domain.TicketPriorityHigh, domain.TicketCategoryAccess),
		sampleTicket("2", "Mouse quebrado", domain.TicketStatusOpen, domain.TicketPriorityLow, domain.TicketCategoryHardware),
	)

	data, name, err := NewDashboardService(repo).ExportReport(fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "relatorio-chamados-2024-05.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Resumo", "Chamados"}, f.GetSheetList())

	total, err := f.GetCellValue("Resumo", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
	rate, err := f.GetCellValue("Resumo", "B7")
	require.NoError(t, err)
	assert.Equal(t, "50", rate)

	rows, err := f.GetRows("Chamados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Título", rows[0][1])
	assert.Equal(t, []string{"1", "Erro no login", "Ana Souza", "Acesso/Login", "Alta", "Fechado"}, rows[1][:6])
}
