// Package module holds the Module contract on its own so ports packages can import it
// without pulling in modkit
package module

import (
	phttp "surveyflow/internal/platform/net/http"
)

// Module is one mountable unit of the API or the pipeline.
// Ports is what the module offers to others, nil when it offers nothing
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
