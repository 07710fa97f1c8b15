// Package device classifies the calling client from its User-Agent so logs
// and metrics can tell browsers, scripts and crawlers apart.
package device

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyInfo struct{}

// Info is the parsed User-Agent.
type Info struct {
	Browser        string
	BrowserVersion string
	OS             string
	Mobile         bool
	Bot            bool
}

// Kind buckets the client as "bot", "mobile", "desktop" or "unknown".
func (i Info) Kind() string {
	switch {
	case i.Bot:
		return "bot"
	case i.Mobile:
		return "mobile"
	case i.Browser != "":
		return "desktop"
	default:
		return "unknown"
	}
}

// Parse reads a User-Agent header value. An empty header gives the zero Info.
func Parse(userAgent string) Info {
	if userAgent == "" {
		return Info{}
	}
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	return Info{
		Browser:        name,
		BrowserVersion: version,
		OS:             ua.OS(),
		Mobile:         ua.Mobile(),
		Bot:            ua.Bot(),
	}
}

// Middleware parses the request's User-Agent into the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithInfo(r.Context(), Parse(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the client Info, or the zero Info outside a request.
func FromContext(ctx context.Context) Info {
	if info, ok := ctx.Value(contextKeyInfo{}).(Info); ok {
		return info
	}
	return Info{}
}

// WithInfo injects client Info into a context.
func WithInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, contextKeyInfo{}, info)
}
