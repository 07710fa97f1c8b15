package testutil

import (
	"net/http"
	"time"

	"dummygen/pkg/requestcontext"
)

// WithClientIP sets the client IP the metadata middleware would have resolved.
func WithClientIP(req *http.Request, ip string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent())
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock, as the requesttime middleware does.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
