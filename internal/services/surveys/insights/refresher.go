package insights

import (
	"cmp"
	"context"
	"slices"
	"time"

	"surveyflow/internal/core/normalize"
	"surveyflow/internal/platform/logger"
	"surveyflow/internal/services/surveys/domain"
)

const (
	// DefaultInterval is used when no refresh interval is configured
	DefaultInterval = 60 * time.Second
	// MinInterval is the shortest interval a refresher accepts
	MinInterval = 5 * time.Second
)

// Source is the read side of the fast store the refresher needs
type Source interface {
	All(ctx context.Context) ([]domain.FastRecord, error)
}

// Refresher periodically rebuilds the insights snapshot
type Refresher struct {
	src      Source
	cache    *Cache
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewRefresher builds a refresher; interval 0 means DefaultInterval and anything
// shorter than MinInterval is raised to it
func NewRefresher(src Source, cache *Cache, interval time.Duration, log *logger.Logger) *Refresher {
	if interval == 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Named("insights-refresher")
	}
	return &Refresher{
		src:      src,
		cache:    cache,
		interval: max(interval, MinInterval),
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Interval is the effective refresh period
func (r *Refresher) Interval() time.Duration { return r.interval }

// Run refreshes immediately and then every interval until ctx is done
func (r *Refresher) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		if err := r.RefreshOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Error().Err(err).Msg("insights refresh failed, keeping previous snapshot")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// RefreshOnce rebuilds and publishes one snapshot; on error the cache is untouched
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	recs, err := r.src.All(ctx)
	if err != nil {
		return domain.RefreshCycleFailure(err)
	}
	snap := Build(recs, r.now())
	r.cache.Set(snap)
	r.log.Debug().Int("clients", len(snap)).Int("records", len(recs)).Msg("insights refreshed")
	return nil
}

// Build groups records by folded client id and counts folded satisfaction labels
func Build(recs []domain.FastRecord, at time.Time) []domain.ClientInsights {
	type group struct {
		display string
		counts  map[string]int
	}
	byKey := map[string]*group{}
	for _, rec := range recs {
		k := normalize.Key(rec.ClientID)
		g, ok := byKey[k]
		if !ok {
			g = &group{display: rec.ClientID, counts: map[string]int{}}
			byKey[k] = g
		}
		g.counts[normalize.Label(rec.Satisfaction)]++
	}

	out := make([]domain.ClientInsights, 0, len(byKey))
	for _, g := range byKey {
		out = append(out, domain.ClientInsights{
			ClientID:           g.display,
			SatisfactionCounts: g.counts,
			GeneratedAt:        at,
		})
	}
	slices.SortFunc(out, func(a, b domain.ClientInsights) int { return cmp.Compare(a.ClientID, b.ClientID) })
	return out
}
