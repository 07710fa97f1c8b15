// Package middleware holds cross-cutting HTTP middleware for the server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"dummygen/pkg/platform/middleware/device"
	"dummygen/pkg/platform/privacy"
	"dummygen/pkg/requestcontext"
)

// AccessLog writes one structured line per request. Client IPs are logged as
// their network prefix only.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			ctx := r.Context()
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			client := device.FromContext(ctx)
			logger.LogAttrs(ctx, level, "http request",
				slog.String("request_id", requestcontext.RequestID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("ip_prefix", privacy.AnonymizeIP(requestcontext.ClientIP(ctx))),
				slog.String("client_kind", client.Kind()),
				slog.String("browser", client.Browser),
			)
		})
	}
}
