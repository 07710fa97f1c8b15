package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dummygen/internal/platform/config"
)

func TestNew(t *testing.T) {
	h := http.NotFoundHandler()

	srv := New(config.Server{Addr: ":9000", RequestTimeout: 30 * time.Second}, h)
	assert.Equal(t, ":9000", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Equal(t, 35*time.Second, srv.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)

	t.Run("no request timeout leaves writes unbounded", func(t *testing.T) {
		srv := New(config.Server{Addr: ":9000"}, h)
		assert.Zero(t, srv.WriteTimeout)
	})
}
