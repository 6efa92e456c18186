// Package metadata records who is on the other end of a request: client IP
// and a parsed summary of the User-Agent.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"ledgerd/pkg/requestcontext"
)

// ClientMetadata stores client IP, raw User-Agent and its parsed form in the
// request context. Apply it before access logging and rate limiting.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), raw, ParseUserAgent(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseUserAgent reduces a User-Agent header to browser name, OS and a bot flag.
func ParseUserAgent(raw string) requestcontext.ClientInfo {
	if raw == "" {
		return requestcontext.ClientInfo{}
	}
	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	return requestcontext.ClientInfo{
		Browser: browser,
		OS:      ua.OS(),
		Bot:     ua.Bot(),
	}
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then RemoteAddr without its port.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
