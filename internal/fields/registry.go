package fields

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	platformstrings "dummygen/pkg/platform/strings"
)

// Registry is the validated, read-only field catalog. It is safe for
// concurrent use; nothing mutates it after New returns.
type Registry struct {
	entries    map[string]*entry
	order      []string
	categories []string
}

type entry struct {
	def     FieldDefinition
	gen     generator
	special *special
	locale  *locale
	// base is FixedArgs overlaid with declared constraint defaults.
	base Args
}

// New validates defs and builds a registry. Every violation is reported.
func New(defs []FieldDefinition) (*Registry, error) {
	r := &Registry{entries: make(map[string]*entry, len(defs))}
	var errs []error
	categories := make([]string, 0, len(defs))

	for _, d := range defs {
		e, err := newEntry(d.clone())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := r.entries[d.ID]; dup {
			errs = append(errs, fmt.Errorf("field %q: duplicate id", d.ID))
			continue
		}
		r.entries[d.ID] = e
		r.order = append(r.order, d.ID)
		categories = append(categories, d.Category)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid field catalog: %w", errors.Join(errs...))
	}
	r.categories = platformstrings.DedupeAndTrim(categories)
	return r, nil
}

// Default builds the registry from the built-in catalog plus any extra
// definitions. Extra ids must not collide with built-in ones.
func Default(extra ...FieldDefinition) (*Registry, error) {
	return New(append(Catalog(), extra...))
}

func newEntry(d FieldDefinition) (*entry, error) {
	wrap := func(format string, a ...any) error {
		return fmt.Errorf("field %q: %s", d.ID, fmt.Sprintf(format, a...))
	}
	if strings.TrimSpace(d.ID) == "" {
		return nil, errors.New("field with empty id")
	}
	if strings.TrimSpace(d.Label) == "" {
		return nil, wrap("label is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return nil, wrap("category is required")
	}
	gen, ok := generators[d.Generator]
	if !ok {
		return nil, wrap("unknown generator %q", d.Generator)
	}
	e := &entry{def: d, gen: gen}
	if sp, ok := specials[d.ID]; ok {
		e.special = &sp
	}
	if d.Locale != "" {
		l, ok := locales[d.Locale]
		if !ok {
			return nil, wrap("unknown locale %q", d.Locale)
		}
		e.locale = &l
	}

	e.base = make(Args, len(d.FixedArgs))
	maps.Copy(e.base, d.FixedArgs)
	seen := make(map[string]struct{}, len(d.Constraints))
	for _, c := range d.Constraints {
		if c.Name == "" {
			return nil, wrap("constraint with empty name")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, wrap("duplicate constraint %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if !c.Kind.IsValid() {
			return nil, wrap("constraint %q: unknown type %q", c.Name, c.Kind)
		}
		if !gen.accepts(c.Name) && (e.special == nil || !e.special.accepts(c.Name)) {
			return nil, wrap("constraint %q is not accepted by generator %q", c.Name, d.Generator)
		}
	}
	if _, err := gen.bind(e.base); err != nil {
		return nil, wrap("fixed arguments: %v", err)
	}
	return e, nil
}

// Lookup returns a copy of the definition for id.
func (r *Registry) Lookup(id string) (FieldDefinition, bool) {
	e, ok := r.entries[id]
	if !ok {
		return FieldDefinition{}, false
	}
	return e.def.clone(), true
}

// IDs returns field ids in catalog order.
func (r *Registry) IDs() []string {
	return append([]string{}, r.order...)
}

// ListFields returns the catalog for schema-building clients.
func (r *Registry) ListFields() Metadata {
	out := Metadata{
		Fields:     make(map[string]FieldDefinition, len(r.entries)),
		Categories: append([]string{}, r.categories...),
	}
	for id, e := range r.entries {
		out.Fields[id] = e.def.clone()
	}
	return out
}
