// Package config maps platform settings onto per-class rate limits.
package config

import (
	"time"

	"dummygen/internal/platform/config"
	"dummygen/internal/ratelimit/models"
)

// Limit is a sliding-window allowance.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// Config holds the per-IP limit for each endpoint class and the IPs exempt
// from limiting.
type Config struct {
	IPLimits  map[models.EndpointClass]Limit
	Allowlist []string
}

// DefaultConfig allows 10 generations and 100 reads per minute per IP.
func DefaultConfig() *Config {
	return &Config{
		IPLimits: map[models.EndpointClass]Limit{
			models.ClassGenerate: {RequestsPerWindow: config.DefaultGeneratePerWindow, Window: time.Minute},
			models.ClassRead:     {RequestsPerWindow: config.DefaultReadPerWindow, Window: time.Minute},
		},
	}
}

// FromPlatform builds a Config from the server's environment settings.
func FromPlatform(cfg config.RateLimitConfig) *Config {
	return &Config{
		IPLimits: map[models.EndpointClass]Limit{
			models.ClassGenerate: {RequestsPerWindow: cfg.GeneratePerWindow, Window: cfg.Window},
			models.ClassRead:     {RequestsPerWindow: cfg.ReadPerWindow, Window: cfg.Window},
		},
		Allowlist: cfg.Allowlist,
	}
}

// GetIPLimit reports the limit for class. ok is false when the class has no
// usable limit configured.
func (c *Config) GetIPLimit(class models.EndpointClass) (requestsPerWindow int, window time.Duration, ok bool) {
	l, found := c.IPLimits[class]
	if !found || l.RequestsPerWindow <= 0 || l.Window <= 0 {
		return 0, 0, false
	}
	return l.RequestsPerWindow, l.Window, true
}
