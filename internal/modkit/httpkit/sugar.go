package httpkit

import "net/http"

// GetJSON mounts a body-less handler under GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a decode and validate handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// GetResponse mounts a Response-returning handler under GET
func GetResponse(r Router, path string, h func(*http.Request) Response) {
	r.Get(path, Handle(h))
}

// PostResponse mounts a Response-returning handler under POST
func PostResponse(r Router, path string, h func(*http.Request) Response) {
	r.Post(path, Handle(h))
}
