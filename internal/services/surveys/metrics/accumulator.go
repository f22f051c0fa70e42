// Package metrics keeps running NPS counters per client
package metrics

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"surveyflow/internal/core/normalize"
	"surveyflow/internal/services/surveys/domain"
)

// counter holds one client's running totals.
// count and sum live in one struct so a snapshot reads a matching pair
type counter struct {
	display string
	mu      sync.Mutex
	count   int64
	sum     int64
}

func (c *counter) add(score int) {
	c.mu.Lock()
	c.count++
	c.sum += int64(score)
	c.mu.Unlock()
}

func (c *counter) read() (count, sum int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.sum
}

// Accumulator tracks count and sum per client without a global lock.
// Client ids are folded; the first id seen for a client is the one reported
type Accumulator struct {
	m       sync.Map // folded id -> *counter
	tracked atomic.Int64
}

var (
	_ domain.Tracker       = (*Accumulator)(nil)
	_ domain.MetricsReader = (*Accumulator)(nil)
)

// New returns an empty accumulator
func New() *Accumulator { return &Accumulator{} }

// Track adds score to clientID's totals
func (a *Accumulator) Track(clientID string, score int) {
	k := normalize.Key(clientID)
	v, ok := a.m.Load(k)
	if !ok {
		v, _ = a.m.LoadOrStore(k, &counter{display: clientID})
	}
	v.(*counter).add(score)
	a.tracked.Add(1)
}

// Get returns one client's NPS
func (a *Accumulator) Get(clientID string) (domain.ClientNps, bool) {
	v, ok := a.m.Load(normalize.Key(clientID))
	if !ok {
		return domain.ClientNps{}, false
	}
	return npsOf(v.(*counter)), true
}

// Snapshot returns every client's NPS ordered by client id
func (a *Accumulator) Snapshot() []domain.ClientNps {
	out := []domain.ClientNps{}
	a.m.Range(func(_, v any) bool {
		out = append(out, npsOf(v.(*counter)))
		return true
	})
	slices.SortFunc(out, func(x, y domain.ClientNps) int { return cmp.Compare(x.ClientID, y.ClientID) })
	return out
}

// Tracked is the total number of scores folded in
func (a *Accumulator) Tracked() int64 { return a.tracked.Load() }

func npsOf(c *counter) domain.ClientNps {
	count, sum := c.read()
	return domain.ClientNps{ClientID: c.display, Average: domain.Average(sum, count), Count: count}
}
