package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	dErrors "dummygen/pkg/domain-errors"
	platformstrings "dummygen/pkg/platform/strings"
)

type paramKind int

const (
	paramInt paramKind = iota
	paramFloat
	paramText
	paramList
)

func (k paramKind) String() string {
	switch k {
	case paramInt:
		return "integer"
	case paramFloat:
		return "number"
	case paramText:
		return "text"
	case paramList:
		return "list"
	default:
		return "unknown"
	}
}

type param struct {
	name string
	kind paramKind
}

// args are generator arguments after binding: every value has the Go type of
// its declared parameter kind.
type args map[string]any

func (a args) intArg(name string, def int) int {
	if v, ok := a[name].(int); ok {
		return v
	}
	return def
}

func (a args) floatArg(name string, def float64) float64 {
	if v, ok := a[name].(float64); ok {
		return v
	}
	return def
}

// intRange reads a lower/upper bound pair. A bound the caller left out
// collapses onto the one they gave rather than contradicting it.
func (a args) intRange(loName, hiName string, loDef, hiDef int) (int, int) {
	lo, loOK := a[loName].(int)
	hi, hiOK := a[hiName].(int)
	switch {
	case loOK && hiOK:
	case loOK:
		hi = max(hiDef, lo)
	case hiOK:
		lo = min(loDef, hi)
	default:
		lo, hi = loDef, hiDef
	}
	return lo, hi
}

func (a args) floatRange(loName, hiName string, loDef, hiDef float64) (float64, float64) {
	lo, loOK := a[loName].(float64)
	hi, hiOK := a[hiName].(float64)
	switch {
	case loOK && hiOK:
	case loOK:
		hi = max(hiDef, lo)
	case hiOK:
		lo = min(loDef, hi)
	default:
		lo, hi = loDef, hiDef
	}
	return lo, hi
}

func (a args) ageRange() (int, int) {
	return a.intRange("min_age", "max_age", defaultMinAge, defaultMaxAge)
}

func (a args) textArg(name, def string) string {
	if v, ok := a[name].(string); ok {
		return v
	}
	return def
}

func (a args) listArg(name string, def []any) []any {
	if v, ok := a[name].([]any); ok {
		return v
	}
	return def
}

// bind checks raw arguments against the generator's declared parameters and
// coerces them. It never calls the generator.
func (g generator) bind(raw map[string]any) (args, error) {
	out := make(args, len(raw))
	for _, name := range sortedKeys(raw) {
		p, ok := g.param(name)
		if !ok {
			return nil, invalidConstraint(name, "is not supported by this field type")
		}
		v, err := coerce(p, raw[name])
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	if g.check != nil {
		if err := g.check(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g generator) param(name string) (param, bool) {
	for _, p := range g.params {
		if p.name == name {
			return p, true
		}
	}
	return param{}, false
}

func (g generator) accepts(name string) bool {
	_, ok := g.param(name)
	return ok
}

func coerce(p param, v any) (any, error) {
	switch p.kind {
	case paramInt:
		if n, ok := coerceInt(v); ok {
			return n, nil
		}
	case paramFloat:
		if f, ok := coerceFloat(v); ok {
			return f, nil
		}
	case paramText:
		switch s := v.(type) {
		case string:
			return s, nil
		case json.Number:
			return s.String(), nil
		}
	case paramList:
		if l, ok := coerceList(v); ok {
			return l, nil
		}
	}
	return nil, invalidConstraint(p.name, fmt.Sprintf("must be %s, got %v", withArticle(p.kind.String()), v))
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float64:
		return wholeFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return wholeFloat(f)
		}
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return wholeFloat(f)
		}
	}
	return 0, false
}

func wholeFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case string:
		tokens := splitValues(l)
		out := make([]any, len(tokens))
		for i, s := range tokens {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// splitValues splits comma-separated text, trims each token and drops empty ones.
func splitValues(s string) []string {
	return platformstrings.SplitTrim(s, ",")
}

func invalidConstraint(name, reason string) error {
	return dErrors.New(dErrors.CodeInvalidConstraint, fmt.Sprintf("constraint %q %s", name, reason))
}

func withArticle(s string) string {
	if s != "" && strings.ContainsRune("aeiou", rune(s[0])) {
		return "an " + s
	}
	return "a " + s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
