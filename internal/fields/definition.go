// Package fields is the field registry: a declarative catalog of field types,
// the dispatch table of value generators behind them, and the resolution of a
// schema entry (type + constraints) into one generated value.
//
// The catalog is data. Adding a field type means adding a FieldDefinition to
// the catalog (or to a YAML extension file); no code changes are needed unless
// the field needs a new generator.
package fields

import "maps"

// GeneratorRef names an entry of the generator dispatch table.
type GeneratorRef string

// ValueKind is the declared kind of a constraint value, used by schema-building UIs.
type ValueKind string

const (
	KindText   ValueKind = "text"
	KindNumber ValueKind = "number"
)

// IsValid reports whether k is a supported constraint value kind.
func (k ValueKind) IsValid() bool {
	return k == KindText || k == KindNumber
}

// ConstraintSpec declares one constraint a caller may pass for a field type.
// Default is a suggestion for schema-building clients and never reaches the
// generator.
type ConstraintSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     ValueKind `json:"type" yaml:"type"`
	Label    string    `json:"label" yaml:"label"`
	Required bool      `json:"required" yaml:"required"`
	Default  any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// Args are raw generator arguments keyed by parameter name.
type Args map[string]any

// FieldDefinition describes one supported field type. Definitions are built
// once at startup and never mutated; the registry hands out copies.
type FieldDefinition struct {
	ID          string           `json:"id" yaml:"id"`
	Label       string           `json:"label" yaml:"label"`
	Category    string           `json:"category" yaml:"category"`
	Generator   GeneratorRef     `json:"generator" yaml:"generator"`
	FixedArgs   Args             `json:"fixed_args,omitempty" yaml:"fixed_args,omitempty"`
	Locale      string           `json:"locale,omitempty" yaml:"locale,omitempty"`
	Constraints []ConstraintSpec `json:"constraints" yaml:"constraints"`
}

func (d FieldDefinition) clone() FieldDefinition {
	out := d
	if d.FixedArgs != nil {
		out.FixedArgs = maps.Clone(d.FixedArgs)
	}
	out.Constraints = append([]ConstraintSpec{}, d.Constraints...)
	return out
}

// Metadata is the catalog view consumed by schema-building clients.
type Metadata struct {
	Fields     map[string]FieldDefinition `json:"fields"`
	Categories []string                   `json:"categories"`
}
