// Package token guards operator endpoints with a shared bearer token.
package token

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	request "dummygen/pkg/platform/middleware/request"
	"dummygen/pkg/platform/privacy"
	"dummygen/pkg/requestcontext"
)

// Require rejects requests whose Authorization header does not carry
// "Bearer <expected>". An empty expected token lets every request through.
func Require(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "operator token mismatch",
					"request_id", request.GetRequestID(ctx),
					"path", r.URL.Path,
					"ip_prefix", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="dummygen"`)
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"operator token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
