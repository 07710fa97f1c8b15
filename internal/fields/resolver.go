package fields

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	dErrors "dummygen/pkg/domain-errors"
)

// Resolver turns (field type, constraints) into values for one batch. It owns
// the batch's random source and is not safe for concurrent use.
type Resolver struct {
	registry  *Registry
	src       Source
	strict    bool
	now       time.Time
	fallbacks int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStrict makes constraint binding failures errors instead of fallbacks.
func WithStrict(strict bool) ResolverOption {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithNow sets the clock used by date generators.
func WithNow(now time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver returns a resolver drawing from src.
func (r *Registry) NewResolver(src Source, opts ...ResolverOption) *Resolver {
	res := &Resolver{registry: r, src: src, now: time.Now()}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Fallbacks is the number of values generated with no arguments because the
// caller's constraints could not be bound.
func (r *Resolver) Fallbacks() int {
	return r.fallbacks
}

// Resolve generates one value for fieldType.
func (r *Resolver) Resolve(fieldType string, constraints map[string]any) (any, error) {
	e, ok := r.registry.entries[fieldType]
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnknownFieldType, fmt.Sprintf("unknown field type: %s", fieldType))
	}

	given := make(map[string]any, len(constraints))
	for k, v := range constraints {
		if v != nil {
			given[k] = v
		}
	}
	for _, spec := range e.def.Constraints {
		if _, ok := given[spec.Name]; spec.Required && !ok {
			return nil, dErrors.New(dErrors.CodeMissingConstraint,
				fmt.Sprintf("constraint %q is required for field type %q", spec.Name, fieldType))
		}
	}

	c := &genContext{src: r.src, locale: e.locale, now: r.now}
	if e.special != nil {
		v, handled, err := e.special.resolve(c, given)
		switch {
		case err != nil && !r.strict && dErrors.HasCode(err, dErrors.CodeInvalidConstraint):
			r.fallbacks++
			return normalize(e.gen.gen(c, args{})), nil
		case err != nil:
			return nil, err
		case handled:
			return normalize(v), nil
		}
	}

	raw := make(map[string]any, len(e.base)+len(given))
	for k, v := range e.base {
		raw[k] = v
	}
	for k, v := range given {
		raw[k] = v
	}
	a, err := e.gen.bind(raw)
	if err != nil {
		if r.strict {
			return nil, err
		}
		r.fallbacks++
		a = args{}
	}
	return normalize(e.gen.gen(c, a)), nil
}

// special overrides the generic path for one field id. handled=false hands
// the call back to the generic path. An invalid-constraint error is a
// fallback in lossy mode.
type special struct {
	params  []string
	resolve func(c *genContext, constraints map[string]any) (v any, handled bool, err error)
}

func (s special) accepts(name string) bool {
	return slices.Contains(s.params, name)
}

var specials = map[string]special{
	"email": {
		params: []string{"domain"},
		resolve: func(c *genContext, constraints map[string]any) (any, bool, error) {
			domain, _ := constraints["domain"].(string)
			if domain = normalizeDomain(domain); domain == "" {
				return nil, false, nil
			}
			return c.src.Username() + "@" + domain, true, nil
		},
	},
	"dob": {
		params: []string{"min_age", "max_age"},
		resolve: func(c *genContext, constraints map[string]any) (any, bool, error) {
			bounds := make(map[string]any, 2)
			for _, k := range []string{"min_age", "max_age"} {
				if v, ok := constraints[k]; ok {
					bounds[k] = v
				}
			}
			a, err := generators[GenDateOfBirth].bind(bounds)
			if err != nil {
				return nil, false, err
			}
			return dateOfBirth(c, a.ageRange()), true, nil
		},
	},
	"enum": {
		params: []string{"values"},
		resolve: func(c *genContext, constraints map[string]any) (any, bool, error) {
			values := enumValues(constraints["values"])
			if len(values) == 0 {
				return nil, false, dErrors.New(dErrors.CodeMissingConstraint,
					`constraint "values" must contain at least one non-empty value`)
			}
			return values[c.src.Number(0, len(values)-1)], true, nil
		},
	},
}

func enumValues(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return splitValues(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return splitValues(fmt.Sprint(t))
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case calendarDate:
		return time.Time(t).Format(time.DateOnly)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
