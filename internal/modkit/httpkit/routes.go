package httpkit

import "net/http"

// MountUnder registers mount on a subrouter at prefix with mw applied to that subrouter only.
// An empty prefix registers in a group on r so routes stay at their own paths
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	sub := func(g Router) {
		if len(mw) > 0 {
			g.Use(mw...)
		}
		mount(g)
	}
	if prefix == "" {
		r.Group(sub)
		return
	}
	r.Route(prefix, sub)
}
