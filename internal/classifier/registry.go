package classifier

import (
	"errors"
	"fmt"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ResponseTemplate renders the canned response for a request. It receives
// the original request text.
type ResponseTemplate func(text string) string

// CategoryConfig is the static configuration of one category.
type CategoryConfig struct {
	Name     domain.Category
	Keywords []string
	Priority domain.TicketPriority
	Color    string
	Template ResponseTemplate
}

// IsFallback reports whether the category is the no-match fallback.
func (c CategoryConfig) IsFallback() bool {
	return len(c.Keywords) == 0
}

// Registry is an ordered, immutable set of categories. Declaration order
// decides ties during classification.
type Registry struct {
	categories []CategoryConfig
	index      map[domain.Category]int
	fallback   int
}

var (
	ErrNoFallback        = errors.New("registry requires exactly one category without keywords")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrMissingTemplate   = errors.New("category has no response template")
)

// NewRegistry validates configs and returns a Registry holding its own copy.
func NewRegistry(configs []CategoryConfig) (*Registry, error) {
	r := &Registry{
		categories: make([]CategoryConfig, 0, len(configs)),
		index:      make(map[domain.Category]int, len(configs)),
		fallback:   -1,
	}
	for _, cfg := range configs {
		if _, exists := r.index[cfg.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cfg.Name)
		}
		if cfg.Template == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, cfg.Name)
		}
		if cfg.IsFallback() {
			if r.fallback >= 0 {
				return nil, ErrNoFallback
			}
			r.fallback = len(r.categories)
		}
		cfg.Keywords = append([]string(nil), cfg.Keywords...)
		r.index[cfg.Name] = len(r.categories)
		r.categories = append(r.categories, cfg)
	}
	if r.fallback < 0 {
		return nil, ErrNoFallback
	}
	return r, nil
}

// Categories returns the configured categories in declaration order.
func (r *Registry) Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(r.categories))
	for i := range r.categories {
		out[i] = r.category(i)
	}
	return out
}

// Names returns category names in declaration order.
func (r *Registry) Names() []domain.Category {
	names := make([]domain.Category, len(r.categories))
	for i, cfg := range r.categories {
		names[i] = cfg.Name
	}
	return names
}

// Lookup returns the configuration of name.
func (r *Registry) Lookup(name domain.Category) (CategoryConfig, bool) {
	i, ok := r.index[name]
	if !ok {
		return CategoryConfig{}, false
	}
	return r.category(i), true
}

// Fallback returns the category used when nothing matches.
func (r *Registry) Fallback() CategoryConfig {
	return r.category(r.fallback)
}

func (r *Registry) category(i int) CategoryConfig {
	cfg := r.categories[i]
	cfg.Keywords = append([]string(nil), cfg.Keywords...)
	return cfg
}

// DefaultRegistry returns the built-in help desk categories.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultCategories())
	if err != nil {
		panic(err)
	}
	return r
}

func defaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name:     domain.CategoryAuthentication,
			Keywords: []string{"password", "login", "access", "reset", "forgot", "incorrect", "locked", "signin"},
			Priority: domain.TicketPriorityHigh,
			Color:    "red",
			Template: authTemplate,
		},
		{
			Name:     domain.CategoryHRServices,
			Keywords: []string{"leave", "balance", "vacation", "sick", "pay", "benefits", "policy", "time off"},
			Priority: domain.TicketPriorityMedium,
			Color:    "blue",
			Template: hrTemplate,
		},
		{
			Name:     domain.CategoryITSupport,
			Keywords: []string{"computer", "software", "network", "printer", "installation", "hardware", "slow"},
			Priority: domain.TicketPriorityMedium,
			Color:    "green",
			Template: itTemplate,
		},
		{
			Name:     domain.CategorySystemIssues,
			Keywords: []string{"error", "bug", "crash", "system", "application", "feature", "not working"},
			Priority: domain.TicketPriorityHigh,
			Color:    "orange",
			Template: systemTemplate,
		},
		{
			Name:     domain.CategoryGeneralInquiry,
			Priority: domain.TicketPriorityLow,
			Color:    "gray",
			Template: generalTemplate,
		},
	}
}
