package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// TicketCategory groups tickets by the kind of problem reported.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "HARDWARE"
	TicketCategorySoftware TicketCategory = "SOFTWARE"
	TicketCategoryNetwork  TicketCategory = "NETWORK"
	TicketCategoryAccess   TicketCategory = "ACCESS"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// Statuses, Priorities and Categories list every value in display order.
var (
	Statuses   = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}
	Priorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}
	Categories = []TicketCategory{TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork, TicketCategoryAccess, TicketCategoryOther}
)

var statusLabels = map[TicketStatus]string{
	TicketStatusOpen:       "Aberto",
	TicketStatusInProgress: "Em Andamento",
	TicketStatusResolved:   "Resolvido",
	TicketStatusClosed:     "Fechado",
}

var priorityLabels = map[TicketPriority]string{
	TicketPriorityLow:      "Baixa",
	TicketPriorityMedium:   "Média",
	TicketPriorityHigh:     "Alta",
	TicketPriorityCritical: "Crítica",
}

var categoryLabels = map[TicketCategory]string{
	TicketCategoryHardware: "Hardware",
	TicketCategorySoftware: "Software",
	TicketCategoryNetwork:  "Rede",
	TicketCategoryAccess:   "Acesso/Login",
	TicketCategoryOther:    "Outro",
}

// Valid reports whether s is one of the enumerated statuses.
func (s TicketStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display text.
func (s TicketStatus) Label() string { return statusLabels[s] }

// Valid reports whether p is one of the enumerated priorities.
func (p TicketPriority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// Label returns the display text.
func (p TicketPriority) Label() string { return priorityLabels[p] }

// Valid reports whether c is one of the enumerated categories.
func (c TicketCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display text.
func (c TicketCategory) Label() string { return categoryLabels[c] }

// ParseStatus accepts a code ("IN_PROGRESS") or a label ("Em Andamento").
func ParseStatus(raw string) (TicketStatus, bool) {
	return parseEnum(raw, Statuses, TicketStatus.Label)
}

// ParsePriority accepts a code ("CRITICAL") or a label ("Crítica").
func ParsePriority(raw string) (TicketPriority, bool) {
	return parseEnum(raw, Priorities, TicketPriority.Label)
}

// ParseCategory accepts a code ("ACCESS") or a label ("Acesso/Login").
func ParseCategory(raw string) (TicketCategory, bool) {
	return parseEnum(raw, Categories, TicketCategory.Label)
}

func parseEnum[T ~string](raw string, values []T, label func(T) string) (T, bool) {
	raw = strings.TrimSpace(raw)
	for _, v := range values {
		if strings.EqualFold(raw, string(v)) || strings.EqualFold(raw, label(v)) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Ticket is one support request.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Requester   string
	Priority    TicketPriority
	Status      TicketStatus
	Category    TicketCategory
	CreatedAt   time.Time
	// AIAnalysis holds the summary of the suggestion accepted at creation.
	AIAnalysis string
}

// IsResolved reports whether the ticket counts as resolved on the dashboard.
func (t Ticket) IsResolved() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}

// IsHighPriority reports whether the ticket needs immediate attention.
func (t Ticket) IsHighPriority() bool {
	return t.Priority == TicketPriorityHigh || t.Priority == TicketPriorityCritical
}
