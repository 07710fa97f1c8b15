// Package strings provides list-cleaning helpers for configuration and
// user-supplied values.
package strings

import (
	"strings"
)

// SplitTrim splits s on sep, trims each token and drops empty ones.
// Duplicates are kept.
//
//	SplitTrim(" a, b ,,a ", ",") // []string{"a", "b", "a"}
func SplitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DedupeAndTrim trims each element and drops empty and repeated ones,
// keeping first-seen order.
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "}) // []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimLower is DedupeAndTrim with case folding, for values such as
// origins and hostnames that compare case-insensitively.
//
//	DedupeAndTrimLower([]string{"  FOO ", "bar", "Foo"}) // []string{"foo", "bar"}
func DedupeAndTrimLower(values []string) []string {
	return dedupe(values, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
