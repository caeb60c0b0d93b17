package middleware

import (
	"net/http"

	"sitesearch/internal/platform/logger"
	pnet "sitesearch/internal/platform/net"
)

// Scope copies the chi request id into the logger context and records Accept-Language
// mount after RequestID
func Scope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), "")
			ctx = pnet.WithLocale(ctx, r.Header.Get("Accept-Language"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
