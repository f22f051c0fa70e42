package service

import (
	"context"
	"fmt"
	"time"

	"surveyflow/internal/platform/logger"
	"surveyflow/internal/services/surveys/domain"
)

// Health defaults
const (
	DefaultHealthInterval = time.Minute
	DefaultCheckTimeout   = 5 * time.Second
	QueueDegradedRatio    = 0.9
)

// Check is one named health probe
type Check struct {
	Name string
	Run  func(ctx context.Context) (domain.HealthStatus, string, error)
}

// Pinger is satisfied by the durable repository
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueGauge exposes queue fill for the queue check
type QueueGauge interface {
	Depth() int
	Capacity() int
}

// DatabaseCheck reports unhealthy when the repository cannot be reached
func DatabaseCheck(p Pinger) Check {
	return Check{Name: "database", Run: func(ctx context.Context) (domain.HealthStatus, string, error) {
		if err := p.Ping(ctx); err != nil {
			return domain.Unhealthy, "database unreachable", err
		}
		return domain.Healthy, "database reachable", nil
	}}
}

// QueueCheck reports degraded once the queue is QueueDegradedRatio full
func QueueCheck(g QueueGauge) Check {
	return Check{Name: "queue", Run: func(context.Context) (domain.HealthStatus, string, error) {
		depth, capacity := g.Depth(), g.Capacity()
		desc := fmt.Sprintf("%d/%d queued", depth, capacity)
		if capacity > 0 && float64(depth) >= QueueDegradedRatio*float64(capacity) {
			return domain.Degraded, desc, nil
		}
		return domain.Healthy, desc, nil
	}}
}

// HealthMonitor runs checks on demand and on an interval
type HealthMonitor struct {
	checks   []Check
	interval time.Duration
	timeout  time.Duration
	log      *logger.Logger
	now      func() time.Time
}

var _ domain.HealthReporter = (*HealthMonitor)(nil)

// NewHealthMonitor builds a monitor; interval <= 0 means DefaultHealthInterval
func NewHealthMonitor(interval time.Duration, log *logger.Logger, checks ...Check) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	if log == nil {
		log = logger.Named("health-monitor")
	}
	return &HealthMonitor{
		checks:   checks,
		interval: interval,
		timeout:  DefaultCheckTimeout,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Report runs every check once; the report status is the worst entry
func (m *HealthMonitor) Report(ctx context.Context) domain.HealthReport {
	rep := domain.HealthReport{Status: domain.Healthy, CheckedAt: m.now(), Entries: make([]domain.HealthEntry, 0, len(m.checks))}
	for _, c := range m.checks {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		start := time.Now()
		status, desc, err := c.Run(cctx)
		cancel()

		entry := domain.HealthEntry{Name: c.Name, Status: status, Description: desc, Duration: time.Since(start)}
		if err != nil {
			entry.Error = err.Error()
			if status == domain.Healthy {
				entry.Status = domain.Unhealthy
			}
		}
		rep.Status = rep.Status.Worse(entry.Status)
		rep.Entries = append(rep.Entries, entry)
	}
	return rep
}

// Run logs a report immediately and then every interval until ctx is done
func (m *HealthMonitor) Run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		m.logReport(m.Report(ctx))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (m *HealthMonitor) logReport(rep domain.HealthReport) {
	ev := m.log.Info()
	switch rep.Status {
	case domain.Degraded:
		ev = m.log.Warn()
	case domain.Unhealthy:
		ev = m.log.Error()
	}
	ev.Str("status", string(rep.Status)).Int("checks", len(rep.Entries)).Msg("health check")

	if rep.Status == domain.Healthy {
		return
	}
	for _, e := range rep.Entries {
		if e.Status == domain.Healthy {
			continue
		}
		m.log.Warn().
			Str("check", e.Name).
			Str("status", string(e.Status)).
			Str("description", e.Description).
			Str("error", e.Error).
			Dur("duration", e.Duration).
			Msg("health check entry")
	}
}
