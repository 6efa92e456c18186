package testutil

import (
	"net/http"

	"ledgerd/pkg/domain"
	"ledgerd/pkg/requestcontext"
)

// WithCaller marks req as authenticated by addr, as RequireCaller would.
func WithCaller(req *http.Request, addr domain.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), addr))
}

// WithRequestID attaches a request ID so log and event assertions can match it.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}
