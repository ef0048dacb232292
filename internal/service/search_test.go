package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/domain"
)

func searchFixture() []domain.Ticket {
	return []domain.Ticket{
		{ID: "TKT-3", User: "Carol", Text: "Printer on floor 2 is offline", Category: domain.CategoryITSupport},
		{ID: "TKT-2", User: "bob", Text: "Forgot my PASSWORD", Category: domain.CategoryAuthentication},
		{ID: "TKT-1", User: "alice", Text: "password expired again", Category: domain.CategoryAuthentication},
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, ticket.ID)
	}
	return out
}

func TestFilterTickets(t *testing.T) {
	tickets := searchFixture()

	cases := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"everything", "", domain.CategoryAll, []string{"TKT-3", "TKT-2", "TKT-1"}},
		{"empty category acts as wildcard", "", "", []string{"TKT-3", "TKT-2", "TKT-1"}},
		{"text match ignores case", "password", domain.CategoryAll, []string{"TKT-2", "TKT-1"}},
		{"user match ignores case", "carol", domain.CategoryAll, []string{"TKT-3"}},
		{"category only", "", string(domain.CategoryITSupport), []string{"TKT-3"}},
		{"term and category", "ALICE", string(domain.CategoryAuthentication), []string{"TKT-1"}},
		{"term and mismatched category", "printer", string(domain.CategoryAuthentication), []string{}},
		{"unknown category", "", "Billing", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterTickets(tickets, tc.term, tc.category)))
		})
	}
}

func TestFilterTicketsDoesNotMutateInput(t *testing.T) {
	tickets := searchFixture()
	filtered := FilterTickets(tickets, "", domain.CategoryAll)
	filtered[0].User = "changed"

	assert.Equal(t, "Carol", tickets[0].User)
	assert.NotNil(t, FilterTickets(nil, "x", domain.CategoryAll))
}
