package classifier

import (
	"math"
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

const (
	fallbackConfidence = 0.3
	baseConfidence     = 0.8
	confidencePerHit   = 0.05
	maxConfidence      = 0.98
)

// Classifier assigns requests to categories by keyword scoring.
type Classifier struct {
	registry *Registry
}

// New returns a Classifier bound to registry. A nil registry selects
// DefaultRegistry.
func New(registry *Registry) *Classifier {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Classifier{registry: registry}
}

// Registry returns the registry the classifier scores against.
func (c *Classifier) Registry() *Registry {
	return c.registry
}

// Classify scores text against every non-fallback category and returns the
// best match. A later category must beat the current best strictly, so
// ties go to the earlier declaration.
func (c *Classifier) Classify(text string) domain.Classification {
	return Classify(c.registry, text)
}

// Classify is the pure form of Classifier.Classify.
func Classify(registry *Registry, text string) domain.Classification {
	lowered := strings.ToLower(text)
	best := registry.Fallback()
	maxScore := 0

	for _, cfg := range registry.categories {
		if cfg.IsFallback() {
			continue
		}
		if score := Score(cfg.Keywords, lowered); score > maxScore {
			maxScore = score
			best = cfg
		}
	}

	return domain.Classification{
		Category:   best.Name,
		Confidence: Confidence(maxScore),
		Priority:   best.Priority,
		Color:      best.Color,
		Response:   best.Template(text),
	}
}

// Score counts the keywords contained in lowered. Each keyword counts at
// most once and matches as a plain substring.
func Score(keywords []string, lowered string) int {
	score := 0
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			score++
		}
	}
	return score
}

// Confidence maps a keyword hit count to a confidence value.
func Confidence(score int) float64 {
	if score <= 0 {
		return fallbackConfidence
	}
	return math.Min(baseConfidence+confidencePerHit*float64(score), maxConfidence)
}
