package httpserver

import (
	"net/http"
	"time"

	"dummygen/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	// writeSlack lets a handler that hit the request timeout still write its
	// 503 before the connection deadline.
	writeSlack        = 5 * time.Second
)

// New builds the API server. The write deadline follows the request timeout
// so large batches are not cut off mid-body.
func New(cfg config.Server, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.RequestTimeout,
		IdleTimeout:       idleTimeout,
	}
	if cfg.RequestTimeout > 0 {
		srv.WriteTimeout = cfg.RequestTimeout + writeSlack
	}
	return srv
}
