package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	r, err := Default()
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistrySuite) TestBuiltInCatalog() {
	s.Run("every catalog entry is registered once", func() {
		ids := s.registry.IDs()
		s.Len(ids, len(Catalog()))
		seen := map[string]bool{}
		for _, id := range ids {
			s.False(seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})

	s.Run("catalog keeps the later definition of a repeated id", func() {
		status, ok := s.registry.Lookup("http_status")
		s.Require().True(ok)
		s.Equal("System", status.Category)
		s.Equal([]any{200, 201, 400, 401, 403, 404, 500}, status.FixedArgs["elements"])

		rt, ok := s.registry.Lookup("response_time_ms")
		s.Require().True(ok)
		s.Equal(2000, rt.Constraints[1].Default)
	})

	s.Run("categories are de-duplicated in catalog order", func() {
		meta := s.registry.ListFields()
		s.Equal([]string{
			"Identity", "Contact", "Dates & Time", "IDs & System", "Text", "Network",
			"Location", "Web", "System", "Finance", "Security", "Analytics",
			"Business", "Media", "Misc",
		}, meta.Categories)
		s.Len(meta.Fields, len(s.registry.IDs()))
	})

	s.Run("enum declares a required values constraint", func() {
		enum, ok := s.registry.Lookup("enum")
		s.Require().True(ok)
		s.Require().Len(enum.Constraints, 1)
		s.Equal("values", enum.Constraints[0].Name)
		s.True(enum.Constraints[0].Required)
	})
}

func (s *RegistrySuite) TestListFieldsReturnsCopies() {
	meta := s.registry.ListFields()
	meta.Fields["gender"].FixedArgs["elements"] = []any{"tampered"}
	meta.Fields["age"].Constraints[0].Default = 99

	gender, _ := s.registry.Lookup("gender")
	s.Equal([]any{"Male", "Female", "Other"}, gender.FixedArgs["elements"])
	age, _ := s.registry.Lookup("age")
	s.Equal(18, age.Constraints[0].Default)
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	valid := field("plan", "Plan", "Business", GenRandomElement)

	tests := []struct {
		name    string
		defs    []FieldDefinition
		wantErr string
	}{
		{
			name:    "duplicate id",
			defs:    []FieldDefinition{valid, valid},
			wantErr: `field "plan": duplicate id`,
		},
		{
			name:    "unknown generator",
			defs:    []FieldDefinition{field("x", "X", "Misc", "does_not_exist")},
			wantErr: `unknown generator "does_not_exist"`,
		},
		{
			name:    "unknown locale",
			defs:    []FieldDefinition{withLocale(field("x", "X", "Misc", GenPhoneNumber), "xx_XX")},
			wantErr: `unknown locale "xx_XX"`,
		},
		{
			name:    "constraint not accepted by generator",
			defs:    []FieldDefinition{field("x", "X", "Misc", GenCity, num("min", "Min", 1))},
			wantErr: `constraint "min" is not accepted by generator "city"`,
		},
		{
			name: "fixed args that do not bind",
			defs: []FieldDefinition{{ID: "x", Label: "X", Category: "Misc", Generator: GenRandomInt,
				FixedArgs: Args{"min": 10, "max": 1}}},
			wantErr: "must not be greater than max",
		},
		{
			name:    "missing label",
			defs:    []FieldDefinition{{ID: "x", Category: "Misc", Generator: GenCity}},
			wantErr: "label is required",
		},
		{
			name: "unknown constraint kind",
			defs: []FieldDefinition{field("x", "X", "Misc", GenEmail,
				ConstraintSpec{Name: "domain", Kind: "date"})},
			wantErr: `unknown type "date"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultRejectsCollidingExtensions(t *testing.T) {
	_, err := Default(field("email", "Email", "Contact", GenEmail))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "email": duplicate id`)
}

func TestParseDefinitions(t *testing.T) {
	doc := []byte(`
fields:
  - id: plan
    label: Plan
    category: Business
    generator: random_element
    fixed_args:
      elements: [free, pro, enterprise]
  - id: seats
    label: Seats
    category: Business
    generator: random_int
    constraints:
      - name: min
        type: number
        label: Minimum
        default: 1
      - name: max
        type: number
        label: Maximum
        default: 50
`)
	defs, err := ParseDefinitions(doc)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, []any{"free", "pro", "enterprise"}, defs[0].FixedArgs["elements"])
	assert.Empty(t, defs[0].Constraints)
	assert.Equal(t, 50, defs[1].Constraints[1].Default)

	r, err := Default(defs...)
	require.NoError(t, err)
	_, ok := r.Lookup("seats")
	assert.True(t, ok)

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := ParseDefinitions([]byte("fields:\n  - id: x\n    faker_method: city\n"))
		require.Error(t, err)
	})

	t.Run("empty document yields no definitions", func(t *testing.T) {
		defs, err := ParseDefinitions(nil)
		require.NoError(t, err)
		assert.Empty(t, defs)
	})
}
