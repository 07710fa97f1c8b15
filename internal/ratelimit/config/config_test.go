package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	platformconfig "dummygen/internal/platform/config"
	"dummygen/internal/ratelimit/models"
)

func TestGetIPLimit(t *testing.T) {
	cfg := DefaultConfig()

	n, window, ok := cfg.GetIPLimit(models.ClassGenerate)
	assert.True(t, ok)
	assert.Equal(t, 10, n)
	assert.Equal(t, time.Minute, window)

	n, _, ok = cfg.GetIPLimit(models.ClassRead)
	assert.True(t, ok)
	assert.Equal(t, 100, n)

	_, _, ok = cfg.GetIPLimit("auth")
	assert.False(t, ok)
}

func TestFromPlatform(t *testing.T) {
	cfg := FromPlatform(platformconfig.RateLimitConfig{
		GeneratePerWindow: 3,
		ReadPerWindow:     0,
		Window:            30 * time.Second,
		Allowlist:         []string{"127.0.0.1"},
	})

	n, window, ok := cfg.GetIPLimit(models.ClassGenerate)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, 30*time.Second, window)

	_, _, ok = cfg.GetIPLimit(models.ClassRead)
	assert.False(t, ok, "zero limit is treated as unconfigured")
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Allowlist)
}
