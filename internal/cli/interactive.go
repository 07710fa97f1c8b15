package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dummygen/internal/fields"
	"dummygen/internal/generator/format"
	"dummygen/internal/generator/models"
)

// Plan is what an interactive session decides.
type Plan struct {
	Schema models.Schema
	Count  int
	Format format.Format
}

// fieldOption renders a catalog entry for the picker.
func fieldOption(id string, def fields.FieldDefinition) string {
	return fmt.Sprintf("%s / %s (%s)", def.Category, def.Label, id)
}

// optionID recovers the field id from a fieldOption string.
func optionID(option string) string {
	open := strings.LastIndex(option, "(")
	if open < 0 || !strings.HasSuffix(option, ")") {
		return option
	}
	return option[open+1 : len(option)-1]
}

// Interview builds a schema by asking which fields to include, what to call
// each column, how many records to make and in which format.
func Interview(ctx context.Context, p Prompter, registry *fields.Registry, maxRecords int) (*Plan, error) {
	ids := registry.IDs()
	options := make([]string, 0, len(ids))
	for _, id := range ids {
		def, _ := registry.Lookup(id)
		options = append(options, fieldOption(id, def))
	}

	picked, err := p.MultiSelect(ctx, "Fields to generate:", options)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, errors.New("no fields selected")
	}

	plan := &Plan{}
	used := make(map[string]bool, len(picked))
	for _, option := range picked {
		id := optionID(option)
		name, err := p.Input(ctx, fmt.Sprintf("Column name for %s:", id), id, func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return errors.New("column name cannot be empty")
			}
			if used[s] {
				return fmt.Errorf("column %q already used", s)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		used[name] = true

		def, _ := registry.Lookup(id)
		constraints, err := askRequired(ctx, p, name, def.Constraints)
		if err != nil {
			return nil, err
		}
		plan.Schema = append(plan.Schema, models.SchemaEntry{Name: name, Type: id, Constraints: constraints})
	}

	countText, err := p.Input(ctx, "Number of records:", "10", func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > maxRecords {
			return fmt.Errorf("count must be between 1 and %d", maxRecords)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	plan.Count, _ = strconv.Atoi(strings.TrimSpace(countText))

	chosen, err := p.Select(ctx, "Output format:", []string{string(format.JSON), string(format.CSV)}, string(format.JSON))
	if err != nil {
		return nil, err
	}
	if plan.Format, err = format.Parse(chosen); err != nil {
		return nil, err
	}
	return plan, nil
}

// askRequired prompts for the constraints a field cannot generate without.
// Optional constraints keep their declared defaults.
func askRequired(ctx context.Context, p Prompter, column string, specs []fields.ConstraintSpec) (map[string]any, error) {
	var out map[string]any
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		v, err := p.Input(ctx, fmt.Sprintf("%s for %s:", spec.Label, column), "", func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", spec.Name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = map[string]any{}
		}
		out[spec.Name] = strings.TrimSpace(v)
	}
	return out, nil
}
