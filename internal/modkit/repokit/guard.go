package repokit

import (
	"context"
	"fmt"
	"time"
)

// DefaultPingTimeout bounds MustPing when ctx has no deadline
const DefaultPingTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// Ping calls p.Ping bounded by DefaultPingTimeout unless ctx already has a deadline
func Ping(ctx context.Context, p interface{ Ping(context.Context) error }) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPingTimeout)
		defer cancel()
	}
	return p.Ping(ctx)
}

// MustPing panics if a dependency doesn't answer a Ping within timeout
func MustPing(ctx context.Context, name string, p interface{ Ping(context.Context) error }) {
	if p == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if err := Ping(ctx, p); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}

// MustGuard runs store.Guard and panics on any error
func MustGuard(ctx context.Context, st guarder) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
