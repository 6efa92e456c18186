// Package requesttime pins one timestamp per request so audit lines and
// emitted events agree on "now".
package requesttime

import (
	"net/http"
	"time"

	"ledgerd/pkg/requestcontext"
)

// Middleware stores the request start time via requestcontext.WithTime.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), now().UTC())))
		})
	}
}
