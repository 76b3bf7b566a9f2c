package service

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/repository"
)

const (
	reportSummarySheet = "Resumo"
	reportTicketsSheet = "Chamados"
)

// DashboardService computes the dashboard figures from the current snapshot.
type DashboardService struct {
	tickets repository.TicketRepository
}

func NewDashboardService(tickets repository.TicketRepository) *DashboardService {
	return &DashboardService{tickets: tickets}
}

// Stats aggregates the current tickets.
func (s *DashboardService) Stats() domain.DashboardStats {
	return computeStats(s.tickets.Snapshot())
}

func computeStats(tickets []domain.Ticket) domain.DashboardStats {
	stats := domain.DashboardStats{Total: len(tickets)}
	byStatus := make(map[domain.TicketStatus]int, len(domain.Statuses))
	byCategory := make(map[domain.TicketCategory]int, len(domain.Categories))

	for _, t := range tickets {
		if t.Status == domain.TicketStatusOpen {
			stats.Open++
		}
		if t.IsResolved() {
			stats.Resolved++
		}
		if t.IsHighPriority() {
			stats.HighPriority++
		}
		byStatus[t.Status]++
		byCategory[t.Category]++
	}
	if stats.Total > 0 {
		stats.ResolutionRate = int(math.Round(float64(stats.Resolved) / float64(stats.Total) * 100))
	}

	for _, st := range domain.Statuses {
		stats.ByStatus = append(stats.ByStatus, domain.StatusCount{Status: st, Count: byStatus[st]})
	}
	for _, c := range domain.Categories {
		stats.ByCategory = append(stats.ByCategory, domain.CategoryCount{Category: c, Count: byCategory[c]})
	}
	return stats
}

// ExportReport builds the monthly xlsx report and its file name.
func (s *DashboardService) ExportReport(now time.Time) ([]byte, string, error) {
	tickets := s.tickets.Snapshot()
	stats := computeStats(tickets)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSummarySheet); err != nil {
		return nil, "", err
	}
	if err := writeSummary(f, stats, now); err != nil {
		return nil, "", fmt.Errorf("write summary: %w", err)
	}
	if _, err := f.NewSheet(reportTicketsSheet); err != nil {
		return nil, "", err
	}
	if err := writeTickets(f, tickets); err != nil {
		return nil, "", fmt.Errorf("write tickets: %w", err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("relatorio-chamados-%s.xlsx", now.Format("2006-01")), nil
}

func writeSummary(f *excelize.File, stats domain.DashboardStats, now time.Time) error {
	rows := [][]interface{}{
		{"Relatório mensal de chamados", now.Format("01/2006")},
		{},
		{"Total de chamados", stats.Total},
		{"Abertos", stats.Open},
		{"Resolvidos", stats.Resolved},
		{"Alta prioridade", stats.HighPriority},
		{"Taxa de resolução (%)", stats.ResolutionRate},
		{},
		{"Status", "Quantidade"},
	}
	for _, sc := range stats.ByStatus {
		rows = append(rows, []interface{}{sc.Status.Label(), sc.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Categoria", "Quantidade"})
	for _, cc := range stats.ByCategory {
		rows = append(rows, []interface{}{cc.Category.Label(), cc.Count})
	}

	if err := writeRows(f, reportSummarySheet, rows); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSummarySheet, "A1", "A1", bold); err != nil {
		return err
	}
	return f.SetColWidth(reportSummarySheet, "A", "A", 28)
}

func writeTickets(f *excelize.File, tickets []domain.Ticket) error {
	rows := [][]interface{}{{"ID", "Título", "Solicitante", "Categoria", "Prioridade", "Status", "Criado em", "Análise IA"}}
	for _, t := range tickets {
		rows = append(rows, []interface{}{
			t.ID,
			t.Title,
			t.Requester,
			t.Category.Label(),
			t.Priority.Label(),
			t.Status.Label(),
			t.CreatedAt.Format("02/01/2006 15:04"),
			t.AIAnalysis,
		})
	}
	if err := writeRows(f, reportTicketsSheet, rows); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(reportTicketsSheet, "A1", "H1", header); err != nil {
		return err
	}
	return f.SetColWidth(reportTicketsSheet, "B", "C", 32)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
