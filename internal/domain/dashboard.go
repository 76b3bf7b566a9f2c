package domain

// StatusCount pairs a status with the number of tickets in it.
type StatusCount struct {
	Status TicketStatus
	Count  int
}

// CategoryCount pairs a category with the number of tickets in it.
type CategoryCount struct {
	Category TicketCategory
	Count    int
}

// DashboardStats aggregates the ticket snapshot for the dashboard.
type DashboardStats struct {
	Total          int
	Open           int
	Resolved       int
	HighPriority   int
	ResolutionRate int
	ByStatus       []StatusCount
	ByCategory     []CategoryCount
}
