// Package models holds the rate limiting value types.
package models

import (
	"fmt"
	"strings"
	"time"
)

// EndpointClass groups routes that share a limit.
type EndpointClass string

const (
	// ClassGenerate covers batch generation, the expensive endpoint.
	ClassGenerate EndpointClass = "generate"
	// ClassRead covers metadata and health reads.
	ClassRead EndpointClass = "read"
)

func (c EndpointClass) IsValid() bool {
	return c == ClassGenerate || c == ClassRead
}

// KeyPrefix namespaces bucket keys by the kind of identifier limited.
type KeyPrefix string

const KeyPrefixIP KeyPrefix = "ip"

// RateLimitKey identifies one sliding window.
type RateLimitKey struct {
	prefix     KeyPrefix
	identifier string
	class      EndpointClass
}

// NewRateLimitKey builds a key, escaping delimiters in the identifier.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{prefix: prefix, identifier: SanitizeKeySegment(identifier), class: class}
}

func (k RateLimitKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.prefix, k.identifier, k.class)
}

// SanitizeKeySegment replaces ':' so an identifier cannot spill into an
// adjacent key segment. IPv6 addresses rely on this.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// RateLimitResult is the outcome of a single check.
type RateLimitResult struct {
	Allowed    bool
	Bypassed   bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds
	// Degraded marks results served by the local fallback store while the
	// shared store is unavailable.
	Degraded bool
}

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
