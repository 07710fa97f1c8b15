package fields

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type extensionFile struct {
	Fields []FieldDefinition `yaml:"fields"`
}

// LoadFile reads additional field definitions from a YAML file:
//
//	fields:
//	  - id: plan
//	    label: Plan
//	    category: Business
//	    generator: random_element
//	    fixed_args:
//	      elements: [free, pro, enterprise]
//	    constraints: []
func LoadFile(path string) ([]FieldDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fields file: %w", err)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("parse fields file %s: %w", path, err)
	}
	return defs, nil
}

// ParseDefinitions decodes a YAML field extension document. Unknown keys are
// rejected.
func ParseDefinitions(data []byte) ([]FieldDefinition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f extensionFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	for i := range f.Fields {
		if f.Fields[i].Constraints == nil {
			f.Fields[i].Constraints = []ConstraintSpec{}
		}
	}
	return f.Fields, nil
}
