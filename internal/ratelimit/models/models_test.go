package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ip:10.0.0.1:generate", NewRateLimitKey(KeyPrefixIP, "10.0.0.1", ClassGenerate).String())
	assert.Equal(t, "ip:2001_db8__1:read", NewRateLimitKey(KeyPrefixIP, "2001:db8::1", ClassRead).String())
}

func TestEndpointClassIsValid(t *testing.T) {
	assert.True(t, ClassGenerate.IsValid())
	assert.True(t, ClassRead.IsValid())
	assert.False(t, EndpointClass("auth").IsValid())
}
