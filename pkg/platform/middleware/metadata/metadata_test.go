package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "first X-Forwarded-For entry wins",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remote:  "10.0.0.2:5555",
			want:    "203.0.113.7",
		},
		{
			name:    "X-Real-IP used without X-Forwarded-For",
			headers: map[string]string{"X-Real-IP": " 198.51.100.4 "},
			remote:  "10.0.0.2:5555",
			want:    "198.51.100.4",
		},
		{
			name:    "unparseable forwarded header is ignored",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.9"},
			remote:  "10.0.0.2:5555",
			want:    "198.51.100.9",
		},
		{
			name:    "spoofed garbage falls back to the peer",
			headers: map[string]string{"X-Forwarded-For": "<script>", "X-Real-IP": ""},
			remote:  "192.0.2.44:80",
			want:    "192.0.2.44",
		},
		{
			name:   "IPv4 remote address strips port",
			remote: "192.0.2.10:43210",
			want:   "192.0.2.10",
		},
		{
			name:   "IPv6 remote address strips brackets and port",
			remote: "[::1]:8080",
			want:   "::1",
		},
		{
			name:   "empty remote address",
			remote: "",
			want:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadataMiddleware(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = GetClientIP(r.Context())
		gotUA = GetUserAgent(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("User-Agent", "curl/8.0")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.1", gotIP)
	assert.Equal(t, "curl/8.0", gotUA)
}
