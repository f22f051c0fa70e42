// Package module wires the survey pipeline and exposes its ports
package module

import (
	"context"

	"surveyflow/internal/modkit"
	"surveyflow/internal/modkit/httpkit"
	"surveyflow/internal/services/surveys/service"
)

// Module owns the survey pipeline and its background tasks
type Module struct {
	deps  modkit.Deps
	opts  Options
	svc   *service.Svc
	ports Ports
}

var (
	_ modkit.Module  = (*Module)(nil)
	_ modkit.Runner  = (*Module)(nil)
	_ modkit.Starter = (*Module)(nil)
	_ modkit.Stopper = (*Module)(nil)
)

// New loads SURVEY_ config, applies non-zero overrides and builds the pipeline
func New(deps modkit.Deps, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg).merge(overrides)
	svc, err := service.New(deps.Named("surveys"), opts.serviceConfig())
	if err != nil {
		return nil, err
	}
	return fromService(deps, opts, svc), nil
}

func fromService(deps modkit.Deps, opts Options, svc *service.Svc) *Module {
	m := &Module{deps: deps, opts: opts, svc: svc}
	m.ports = Ports{
		Enqueuer: svc,
		Metrics:  svc.Metrics,
		Insights: svc.Insights,
		Health:   svc.Health,
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "surveys" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Start bootstraps the schema and warms the fast store
func (m *Module) Start(ctx context.Context) error {
	m.deps.Log.Info().
		Int("max_attempts", m.opts.MaxRetryAttempts).
		Dur("retry_delay", m.opts.retryDelay()).
		Int("queue_capacity", m.opts.QueueCapacity).
		Msg("starting survey pipeline")
	return m.svc.Start(ctx)
}

// Stop closes the queue so new submissions are rejected
func (m *Module) Stop() { m.svc.Stop() }

// Tasks returns the worker, insights refresher and health monitor loops
func (m *Module) Tasks() []modkit.Task { return m.svc.Tasks() }
