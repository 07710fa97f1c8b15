package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dummygen/internal/platform/config"
)

func TestNewWithoutURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{URL: "http://localhost:6379"})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "parse REDIS_URL")
}
