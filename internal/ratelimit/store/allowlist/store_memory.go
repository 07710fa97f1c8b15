// Package allowlist holds the identifiers exempt from rate limiting.
package allowlist

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	platformstrings "dummygen/pkg/platform/strings"
)

// StaticStore is a fixed allowlist of IP addresses and CIDR ranges loaded at
// startup. It is read-only and safe for concurrent use.
type StaticStore struct {
	addrs    map[netip.Addr]struct{}
	prefixes []netip.Prefix
}

// NewStatic parses entries such as "127.0.0.1" or "10.0.0.0/8".
func NewStatic(entries []string) (*StaticStore, error) {
	s := &StaticStore{addrs: make(map[netip.Addr]struct{})}
	for _, entry := range platformstrings.DedupeAndTrim(entries) {
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("allowlist entry %q: %w", entry, err)
			}
			s.prefixes = append(s.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("allowlist entry %q: %w", entry, err)
		}
		s.addrs[addr.Unmap()] = struct{}{}
	}
	return s, nil
}

func (s *StaticStore) IsAllowlisted(_ context.Context, identifier string) (bool, error) {
	addr, err := netip.ParseAddr(identifier)
	if err != nil {
		return false, nil
	}
	addr = addr.Unmap()
	if _, ok := s.addrs[addr]; ok {
		return true, nil
	}
	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of configured entries.
func (s *StaticStore) Len() int {
	return len(s.addrs) + len(s.prefixes)
}
