// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "surveyflow/internal/modkit"
	"surveyflow/internal/modkit/httpkit"
	str "surveyflow/internal/platform/strings"
	sdom "surveyflow/internal/services/surveys/domain"

	metahttp "surveyflow/internal/services/api/meta/http"
)

// Ports declares what meta needs injected
type Ports struct {
	Health sdom.HealthReporter
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	name  string
	built modkit.Built

	startedAt time.Time
}

// New constructs a meta module; Ports must carry a HealthReporter
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Health == nil {
		panic("meta: Ports.Health is required")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		startedAt: time.Now(),
	}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			StartedAt: m.startedAt,
			Health:    p.Health,
		})
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
