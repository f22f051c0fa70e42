// Package insights builds per-client satisfaction snapshots from the fast store
package insights

import (
	"maps"
	"sync/atomic"

	"surveyflow/internal/services/surveys/domain"
)

// Cache holds the latest insights snapshot behind an atomic pointer
type Cache struct {
	snap atomic.Pointer[[]domain.ClientInsights]
}

var _ domain.InsightsReader = (*Cache)(nil)

// NewCache returns a cache whose Latest is empty until the first Set
func NewCache() *Cache {
	c := &Cache{}
	empty := []domain.ClientInsights{}
	c.snap.Store(&empty)
	return c
}

// Latest returns the current snapshot; callers must not mutate it
func (c *Cache) Latest() []domain.ClientInsights {
	if p := c.snap.Load(); p != nil {
		return *p
	}
	return []domain.ClientInsights{}
}

// Set publishes a private copy of next; the last writer wins
func (c *Cache) Set(next []domain.ClientInsights) {
	cp := make([]domain.ClientInsights, len(next))
	for i, ci := range next {
		ci.SatisfactionCounts = maps.Clone(ci.SatisfactionCounts)
		if ci.SatisfactionCounts == nil {
			ci.SatisfactionCounts = map[string]int{}
		}
		cp[i] = ci
	}
	c.snap.Store(&cp)
}
