package modkit

import (
	"context"

	"surveyflow/internal/modkit/module"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module = module.Module

// Task is a named long running loop owned by a module
// Run returns when ctx is cancelled
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner is implemented by modules that own background work
type Runner interface {
	Tasks() []Task
}

// Starter is implemented by modules that must prepare state before serving
type Starter interface {
	Start(ctx context.Context) error
}

// Stopper is implemented by modules that must release resources at shutdown
type Stopper interface {
	Stop()
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// TasksOf collects the background tasks of every module that has any
func TasksOf(mods ...Module) []Task {
	var out []Task
	for _, m := range mods {
		if r, ok := m.(Runner); ok {
			out = append(out, r.Tasks()...)
		}
	}
	return out
}

// StartAll runs Start on every module that implements Starter, stopping at the first error
func StartAll(ctx context.Context, mods ...Module) error {
	for _, m := range mods {
		if s, ok := m.(Starter); ok {
			if err := s.Start(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// StopAll runs Stop on every module that implements Stopper in reverse order
func StopAll(mods ...Module) {
	for i := len(mods) - 1; i >= 0; i-- {
		if s, ok := mods[i].(Stopper); ok {
			s.Stop()
		}
	}
}
