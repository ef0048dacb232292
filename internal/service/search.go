package service

import (
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// FilterTickets keeps tickets whose text or user contains searchTerm
// (case-insensitive) and whose category equals category. An empty term
// matches everything; "All" or an empty category matches every category.
// Input order is preserved.
func FilterTickets(tickets []domain.Ticket, searchTerm, category string) []domain.Ticket {
	term := strings.ToLower(searchTerm)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if !matchesCategory(ticket, category) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(ticket.Text), term) &&
			!strings.Contains(strings.ToLower(ticket.User), term) {
			continue
		}
		out = append(out, ticket)
	}
	return out
}

func matchesCategory(ticket domain.Ticket, category string) bool {
	return category == "" || category == domain.CategoryAll || string(ticket.Category) == category
}
