package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	Text string `json:"text"`
	User string `json:"user"`
}

// TicketResponse is the full view of a ticket.
type TicketResponse struct {
	ID         string                `json:"id"`
	User       string                `json:"user"`
	Text       string                `json:"text"`
	CreatedAt  time.Time             `json:"created_at"`
	Status     domain.TicketStatus   `json:"status"`
	Category   domain.Category       `json:"category"`
	Confidence float64               `json:"confidence"`
	Priority   domain.TicketPriority `json:"priority"`
	Color      string                `json:"color"`
	Response   string                `json:"response"`
}

// CategoryStatResponse is one row of the stats breakdown.
type CategoryStatResponse struct {
	Category   domain.Category `json:"category"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// StatsResponse aggregates tickets per category.
type StatsResponse struct {
	Total      int                    `json:"total"`
	Categories []CategoryStatResponse `json:"categories"`
}

// CategoryResponse describes one configured category.
type CategoryResponse struct {
	Name     domain.Category       `json:"name"`
	Priority domain.TicketPriority `json:"priority"`
	Color    string                `json:"color"`
	Keywords []string              `json:"keywords"`
	Fallback bool                  `json:"fallback"`
}

// CategoriesResponse lists categories and the filter options built from them.
type CategoriesResponse struct {
	Categories    []CategoryResponse `json:"categories"`
	FilterOptions []string           `json:"filter_options"`
}
