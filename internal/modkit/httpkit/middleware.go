package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"sitesearch/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; the zero value is usable
type StackOptions struct {
	CORS        middleware.CORSOptions
	Timeout     time.Duration // default 30s
	SlowRequest time.Duration // default 2s
	Throttle    int           // 0 disables
}

// CommonStack returns the baseline middleware for versioned API scopes
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 2 * time.Second
	}

	stack := []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Scope(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/health"}}),

		// page models depend on request args and locale
		middleware.NoCache(),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if o.Throttle > 0 {
		stack = append(stack, middleware.Throttle(o.Throttle))
	}
	return stack
}
