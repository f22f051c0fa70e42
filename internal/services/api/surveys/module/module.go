// Package module wires the survey endpoints into the API using modkit
package module

import (
	modkit "surveyflow/internal/modkit"
	"surveyflow/internal/modkit/httpkit"
	str "surveyflow/internal/platform/strings"
	sdom "surveyflow/internal/services/surveys/domain"

	surveyshttp "surveyflow/internal/services/api/surveys/http"
	surveyssvc "surveyflow/internal/services/api/surveys/service"
)

// Ports declares the pipeline ports this API module needs injected
type Ports struct {
	Enqueuer sdom.Enqueuer
	Metrics  sdom.MetricsReader
	Insights sdom.InsightsReader
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	name  string
	built modkit.Built

	svc surveyssvc.Service
}

// New constructs the surveys API module; Ports must be supplied with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("surveys-api")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok {
		panic("surveys-api: Ports are required")
	}
	svc := surveyssvc.New(p.Enqueuer, p.Metrics, p.Insights)

	m := &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		surveyshttp.Register(r, m.svc)
		external(r)
	}
	m.built = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports returns the service as the module port
func (m *Module) Ports() any { return m.svc }
