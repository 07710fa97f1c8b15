// Package models holds the ordered schema and record types of the batch generator.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	dErrors "dummygen/pkg/domain-errors"
)

// SchemaEntry is one field of a schema: the output column name, its field
// type and the caller's constraints (nil when none were given).
type SchemaEntry struct {
	Name        string
	Type        string
	Constraints map[string]any
}

// Schema is an ordered list of entries. Order is the declaration order of the
// JSON object it was decoded from.
type Schema []SchemaEntry

// ParseSchema decodes a JSON object mapping field names to either a field type
// string or an object with a "type" key; every other key is a constraint.
// A repeated field name keeps its first position and takes its last value.
func ParseSchema(data []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "schema must be a JSON object")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, dErrors.New(dErrors.CodeValidation, "schema must be a JSON object")
	}

	var schema Schema
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed schema")
		}
		name := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed schema")
		}
		entry, err := parseEntry(name, raw)
		if err != nil {
			return nil, err
		}
		if i, dup := index[name]; dup {
			schema[i] = entry
			continue
		}
		index[name] = len(schema)
		schema = append(schema, entry)
	}
	if _, err := dec.Token(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed schema")
	}
	return schema, nil
}

func parseEntry(name string, raw json.RawMessage) (SchemaEntry, error) {
	if strings.TrimSpace(name) == "" {
		return SchemaEntry{}, dErrors.New(dErrors.CodeValidation, "schema field names must not be empty")
	}
	raw = bytes.TrimSpace(raw)
	entry := SchemaEntry{Name: name}
	switch {
	case len(raw) > 0 && raw[0] == '"':
		if err := json.Unmarshal(raw, &entry.Type); err != nil {
			return SchemaEntry{}, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("field %q: malformed type", name))
		}
	case len(raw) > 0 && raw[0] == '{':
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return SchemaEntry{}, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("field %q: malformed definition", name))
		}
		t, _ := obj["type"].(string)
		entry.Type = t
		delete(obj, "type")
		if len(obj) > 0 {
			entry.Constraints = obj
		}
	default:
		return SchemaEntry{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("field %q: must be a field type or an object with a type", name))
	}
	if strings.TrimSpace(entry.Type) == "" {
		return SchemaEntry{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("field %q: type is required", name))
	}
	return entry, nil
}

// UnmarshalJSON implements json.Unmarshaler with ParseSchema.
func (s *Schema) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSchema(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalJSON writes the schema as an object in entry order.
func (s Schema) MarshalJSON() ([]byte, error) {
	fields := make([]Field, len(s))
	for i, e := range s {
		var v any = e.Type
		if len(e.Constraints) > 0 {
			obj := make(map[string]any, len(e.Constraints)+1)
			for k, c := range e.Constraints {
				obj[k] = c
			}
			obj["type"] = e.Type
			v = obj
		}
		fields[i] = Field{Name: e.Name, Value: v}
	}
	return Record(fields).MarshalJSON()
}
