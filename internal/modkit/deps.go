// Package modkit provides module wiring and core deps
package modkit

import (
	"surveyflow/internal/modkit/repokit"
	"surveyflow/internal/platform/config"
	"surveyflow/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// Named returns a copy of d whose logger carries component name
func (d Deps) Named(name string) Deps {
	d.Log = d.Log.With().Str("component", name).Logger()
	return d
}

// HasPG reports whether a postgres handle was wired
func (d Deps) HasPG() bool { return d.PG != nil }
