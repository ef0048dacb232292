package service

import (
	"math"

	"github.com/spec-kit/triage-service/internal/domain"
)

// CategoryStat is the share of tickets in one category.
type CategoryStat struct {
	Category   domain.Category
	Count      int
	Percentage int
}

// Stats is the per-category breakdown of a ticket set.
type Stats struct {
	Total      int
	Categories []CategoryStat
}

// ComputeStats counts tickets per category. Every name in categories is
// reported, in order, even with a zero count. Percentages are rounded and
// zero when there are no tickets.
func ComputeStats(categories []domain.Category, tickets []domain.Ticket) Stats {
	counts := make(map[domain.Category]int, len(categories))
	order := append([]domain.Category(nil), categories...)
	for _, ticket := range tickets {
		if _, seen := counts[ticket.Category]; !seen && !contains(order, ticket.Category) {
			order = append(order, ticket.Category)
		}
		counts[ticket.Category]++
	}

	stats := Stats{Total: len(tickets), Categories: make([]CategoryStat, 0, len(order))}
	for _, category := range order {
		stats.Categories = append(stats.Categories, CategoryStat{
			Category:   category,
			Count:      counts[category],
			Percentage: percentage(counts[category], stats.Total),
		})
	}
	return stats
}

// Count returns the number of tickets in category.
func (s Stats) Count(category domain.Category) int {
	for _, stat := range s.Categories {
		if stat.Category == category {
			return stat.Count
		}
	}
	return 0
}

// Percentage returns the rounded share of tickets in category.
func (s Stats) Percentage(category domain.Category) int {
	return percentage(s.Count(category), s.Total)
}

func percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func contains(categories []domain.Category, category domain.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
