package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"surveyflow/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values pick the defaults
type StackOptions struct {
	Timeout  time.Duration // default 30s
	SlowLog  time.Duration // default 1s
	CORS     middleware.CORSOptions
	Compress int // default flate.BestSpeed
}

// CommonStack returns the baseline per module middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowLog <= 0 {
		o.SlowLog = time.Second
	}
	if o.Compress == 0 {
		o.Compress = flate.BestSpeed
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability, outside recover so panics are logged with their 500
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowLog}),

		// safety
		middleware.RecoverJSON,

		// freshness
		middleware.NoCache(),

		middleware.CORS(o.CORS),
		middleware.Compress(o.Compress),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// JSONOnly rejects write requests whose body is not application/json
func JSONOnly() func(http.Handler) http.Handler {
	return middleware.AllowContentType("application/json")
}
