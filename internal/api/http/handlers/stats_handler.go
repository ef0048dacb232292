package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
)

// StatsHandler serves aggregate and catalog reads.
type StatsHandler struct {
	store *service.TicketStore
}

// NewStatsHandler constructs handler.
func NewStatsHandler(store *service.TicketStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// Stats GET /stats.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats := h.store.Stats()
	resp := dto.StatsResponse{
		Total:      stats.Total,
		Categories: make([]dto.CategoryStatResponse, 0, len(stats.Categories)),
	}
	for _, stat := range stats.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryStatResponse{
			Category:   stat.Category,
			Count:      stat.Count,
			Percentage: stat.Percentage,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Categories GET /categories.
func (h *StatsHandler) Categories(c *fiber.Ctx) error {
	categories := h.store.Registry().Categories()
	resp := dto.CategoriesResponse{
		Categories:    make([]dto.CategoryResponse, 0, len(categories)),
		FilterOptions: []string{domain.CategoryAll},
	}
	for _, cfg := range categories {
		keywords := cfg.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			Name:     cfg.Name,
			Priority: cfg.Priority,
			Color:    cfg.Color,
			Keywords: keywords,
			Fallback: cfg.IsFallback(),
		})
		resp.FilterOptions = append(resp.FilterOptions, string(cfg.Name))
	}
	return c.JSON(fiber.Map{"data": resp})
}
