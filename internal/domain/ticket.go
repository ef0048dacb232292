package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusProcessing TicketStatus = "Processing"
	TicketStatusResponded  TicketStatus = "Responded"
	// TicketStatusEscalated is displayable but no store transition reaches it.
	TicketStatusEscalated TicketStatus = "Escalated"
)

// Classification is the outcome of classifying one request.
type Classification struct {
	Category   Category
	Confidence float64
	Priority   TicketPriority
	Color      string
	Response   string
}

// Ticket is a submitted support request together with its classification.
type Ticket struct {
	ID         string
	User       string
	Text       string
	CreatedAt  time.Time
	Status     TicketStatus
	Category   Category
	Confidence float64
	Priority   TicketPriority
	Color      string
	Response   string
}

// Classification returns the classification fields of the ticket.
func (t Ticket) Classification() Classification {
	return Classification{
		Category:   t.Category,
		Confidence: t.Confidence,
		Priority:   t.Priority,
		Color:      t.Color,
		Response:   t.Response,
	}
}
