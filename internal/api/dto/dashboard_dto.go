package dto

import "github.com/bz-technologies/helpdesk/internal/domain"

// CountEntry is one bar of a dashboard chart.
type CountEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardResponse aggregates ticket figures.
type DashboardResponse struct {
	Total          int          `json:"total"`
	Open           int          `json:"open"`
	Resolved       int          `json:"resolved"`
	HighPriority   int          `json:"high_priority"`
	ResolutionRate int          `json:"resolution_rate"`
	ByStatus       []CountEntry `json:"by_status"`
	ByCategory     []CountEntry `json:"by_category"`
}

// NewDashboardResponse maps stats to the wire shape.
func NewDashboardResponse(stats domain.DashboardStats) DashboardResponse {
	resp := DashboardResponse{
		Total:          stats.Total,
		Open:           stats.Open,
		Resolved:       stats.Resolved,
		HighPriority:   stats.HighPriority,
		ResolutionRate: stats.ResolutionRate,
		ByStatus:       make([]CountEntry, 0, len(stats.ByStatus)),
		ByCategory:     make([]CountEntry, 0, len(stats.ByCategory)),
	}
	for _, s := range stats.ByStatus {
		resp.ByStatus = append(resp.ByStatus, CountEntry{Code: string(s.Status), Label: s.Status.Label(), Count: s.Count})
	}
	for _, c := range stats.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CountEntry{Code: string(c.Category), Label: c.Category.Label(), Count: c.Count})
	}
	return resp
}
