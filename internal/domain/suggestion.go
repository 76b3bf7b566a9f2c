package domain

// Suggestion is the advisory triage produced by the hosted model for a
// ticket description. Only Summary survives on the created ticket.
type Suggestion struct {
	Category          TicketCategory
	Priority          TicketPriority
	Summary           string
	SuggestedSolution string
}
