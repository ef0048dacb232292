package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/domain"
)

func ticketsIn(categories ...domain.Category) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(categories))
	for i, category := range categories {
		out = append(out, domain.Ticket{ID: fmt.Sprintf("TKT-%d", i), Category: category})
	}
	return out
}

func TestComputeStats(t *testing.T) {
	names := classifier.DefaultRegistry().Names()

	t.Run("empty ticket set", func(t *testing.T) {
		stats := ComputeStats(names, nil)

		assert.Equal(t, 0, stats.Total)
		assert.Len(t, stats.Categories, len(names))
		for _, stat := range stats.Categories {
			assert.Equal(t, 0, stat.Count)
			assert.Equal(t, 0, stat.Percentage)
		}
	})

	t.Run("counts and rounded percentages in registry order", func(t *testing.T) {
		stats := ComputeStats(names, ticketsIn(
			domain.CategoryITSupport,
			domain.CategoryAuthentication,
			domain.CategoryAuthentication,
		))

		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, CategoryStat{Category: domain.CategoryAuthentication, Count: 2, Percentage: 67}, stats.Categories[0])
		assert.Equal(t, CategoryStat{Category: domain.CategoryHRServices, Count: 0, Percentage: 0}, stats.Categories[1])
		assert.Equal(t, CategoryStat{Category: domain.CategoryITSupport, Count: 1, Percentage: 33}, stats.Categories[2])
	})

	t.Run("unknown category is still counted", func(t *testing.T) {
		stats := ComputeStats(names, ticketsIn("Billing"))

		assert.Len(t, stats.Categories, len(names)+1)
		assert.Equal(t, 1, stats.Count("Billing"))
		assert.Equal(t, 100, stats.Percentage("Billing"))
	})

	t.Run("percentages sum to about one hundred", func(t *testing.T) {
		for n := 1; n <= 40; n++ {
			categories := make([]domain.Category, 0, n)
			for i := 0; i < n; i++ {
				categories = append(categories, names[(i*7+n)%len(names)])
			}
			stats := ComputeStats(names, ticketsIn(categories...))

			sum := 0
			for _, stat := range stats.Categories {
				sum += stat.Percentage
			}
			assert.InDelta(t, 100, sum, float64(len(names)), "n=%d", n)
		}
	})
}
