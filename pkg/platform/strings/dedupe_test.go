package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := map[string]struct {
		in        []string
		want      []string
		wantLower []string
	}{
		"nil": {
			in: nil,
		},
		"empty": {
			in:        []string{},
			want:      []string{},
			wantLower: []string{},
		},
		"allowlist ips": {
			in:        []string{" 10.0.0.1", "10.0.0.2 ", "10.0.0.1"},
			want:      []string{"10.0.0.1", "10.0.0.2"},
			wantLower: []string{"10.0.0.1", "10.0.0.2"},
		},
		"blank entries": {
			in:        []string{"", "  ", "x"},
			want:      []string{"x"},
			wantLower: []string{"x"},
		},
		"origins by case": {
			in:        []string{"https://A.example", "https://a.example", " HTTPS://A.EXAMPLE "},
			want:      []string{"https://A.example", "https://a.example", "HTTPS://A.EXAMPLE"},
			wantLower: []string{"https://a.example"},
		},
		"first seen order": {
			in:        []string{"Beta", "alpha", "beta", "Alpha"},
			want:      []string{"Beta", "alpha", "beta", "Alpha"},
			wantLower: []string{"beta", "alpha"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.in))
			assert.Equal(t, tt.wantLower, DedupeAndTrimLower(tt.in))
		})
	}
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a"}, SplitTrim(" a, b ,,a ", ","))
	assert.Equal(t, []string{"Male", "Female", "Other"}, SplitTrim("Male,Female,Other", ","))
	assert.Empty(t, SplitTrim(" , ,", ","))
	assert.Empty(t, SplitTrim("", ","))
}
