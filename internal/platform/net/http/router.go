package http

import "net/http"

// Handler is the plain handler func routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules register against; chi backs it in production
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	// Method registers h for any other verb
	Method(method, path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
