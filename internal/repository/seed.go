package repository

import (
	"time"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// DemoTickets returns the sample tickets shown on a fresh start, newest first.
func DemoTickets(now time.Time) []domain.Ticket {
	return []domain.Ticket{
		{
			ID:          "928371",
			Title:       "Erro no login do ERP",
			Description: "Não consigo acessar o sistema financeiro, diz senha incorreta mesmo após reset.",
			Requester:   "Ana Souza",
			Priority:    domain.TicketPriorityHigh,
			Status:      domain.TicketStatusOpen,
			Category:    domain.TicketCategoryAccess,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          "827361",
			Title:       "Impressora 2º andar offline",
			Description: "A impressora laser não está recebendo documentos da rede.",
			Requester:   "Carlos Lima",
			Priority:    domain.TicketPriorityMedium,
			Status:      domain.TicketStatusInProgress,
			Category:    domain.TicketCategoryHardware,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "726351",
			Title:       "Instalação VS Code",
			Description: "Preciso do VS Code instalado para desenvolvimento.",
			Requester:   "Dev Team",
			Priority:    domain.TicketPriorityLow,
			Status:      domain.TicketStatusResolved,
			Category:    domain.TicketCategorySoftware,
			CreatedAt:   now.Add(-48 * time.Hour),
		},
	}
}
