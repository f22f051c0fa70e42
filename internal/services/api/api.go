// Package api provides the HTTP API for the application
package api

import (
	"surveyflow/internal/platform/config"
	"surveyflow/internal/platform/logger"
	phttp "surveyflow/internal/platform/net/http"
	"surveyflow/internal/platform/net/middleware"
	"surveyflow/internal/platform/store"

	"surveyflow/internal/modkit"
	"surveyflow/internal/modkit/httpkit"
	"surveyflow/internal/modkit/module"
	"surveyflow/internal/modkit/swaggerkit"

	metamod "surveyflow/internal/services/api/meta/module"
	surveysapi "surveyflow/internal/services/api/surveys/module"

	// pipeline module (owns the queue, worker and read models)
	surveysmod "surveyflow/internal/services/surveys/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules add their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string

	// Surveys overrides SURVEY_ config for the fields it sets
	Surveys surveysmod.Options
}

// Mount builds the modules, mounts their routes on r and returns them so the
// caller can start, run and stop them
func Mount(r phttp.Router, opt Options) ([]modkit.Module, error) {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}
	deps := modkit.Deps{
		Log: *log,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// pipeline first; the API modules depend on its ports
	pipeline, err := surveysmod.New(deps, opt.Surveys)
	if err != nil {
		return nil, err
	}
	ports := module.MustPortsOf[surveysmod.Ports](pipeline)

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Health: ports.Health}))
	surveys := surveysapi.New(deps,
		modkit.WithPorts(surveysapi.Ports{
			Enqueuer: ports.Enqueuer,
			Metrics:  ports.Metrics,
			Insights: ports.Insights,
		}),
		modkit.WithMiddlewares(httpkit.JSONOnly()),
	)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS: middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins},
	})

	r.Group(func(g phttp.Router) {
		g.Use(stack...)

		// Swagger + profiler
		swaggerkit.Mount(g, opt.EnableSwagger)
		phttp.MountProfiler(g, "/debug", opt.EnableProfiler)

		// /health and /version at the root
		meta.MountRoutes(g)

		g.Route("/api", func(api phttp.Router) {
			surveys.MountRoutes(api)
			pipeline.MountRoutes(api)
		})
	})

	return []modkit.Module{pipeline, meta, surveys}, nil
}
