package fields

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "dummygen/pkg/domain-errors"
)

func newSource() Source {
	return gofakeit.NewFaker(rand.NewPCG(1, 2), false)
}

func TestText(t *testing.T) {
	src := newSource()
	for _, maxChars := range []int{5, 12, 24, 25, 60, 200, 1000} {
		for range 50 {
			out := text(src, maxChars)
			assert.LessOrEqual(t, len(out), maxChars, out)
			assert.NotEmpty(t, out)
			assert.True(t, strings.HasSuffix(out, "."), out)
		}
	}
}

func TestSentence(t *testing.T) {
	src := newSource()
	out := sentence(src, 6)
	assert.Len(t, strings.Fields(out), 6)
	assert.True(t, strings.HasSuffix(out, "."))
	assert.Equal(t, strings.ToUpper(out[:1]), out[:1])
	assert.Empty(t, sentence(src, 0))
}

func TestIBANCheckDigits(t *testing.T) {
	src := newSource()
	for range 100 {
		v := iban(src)
		require.Len(t, v, 22)
		rearranged := v[4:] + v[:4]
		assert.Equal(t, 1, mod97(rearranged), v)
	}
}

func TestDateOfBirthRangeEdges(t *testing.T) {
	now := time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC)
	c := &genContext{src: newSource(), now: now}
	for range 500 {
		d := time.Time(dateOfBirth(c, 0, 0))
		assert.False(t, d.After(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)), d)
		assert.True(t, d.After(time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)), d)
	}
}

func TestBind(t *testing.T) {
	gen := generators[GenRandomInt]

	tests := []struct {
		name    string
		raw     map[string]any
		want    args
		wantErr bool
	}{
		{name: "empty", raw: map[string]any{}, want: args{}},
		{name: "numeric strings", raw: map[string]any{"min": " 4 ", "max": "9.0"}, want: args{"min": 4, "max": 9}},
		{name: "fractional", raw: map[string]any{"min": 4.5}, wantErr: true},
		{name: "unknown name", raw: map[string]any{"minimum": 1}, wantErr: true},
		{name: "inverted range", raw: map[string]any{"min": 5, "max": 4}, wantErr: true},
		{name: "zero step", raw: map[string]any{"step": 0}, wantErr: true},
		{name: "out of range bound", raw: map[string]any{"max": float64(1 << 60)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gen.bind(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConstraint))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRandomIntStep(t *testing.T) {
	gen := generators[GenRandomInt]
	a, err := gen.bind(map[string]any{"min": 0, "max": 100, "step": 25})
	require.NoError(t, err)
	c := &genContext{src: newSource()}
	for range 50 {
		v := gen.gen(c, a).(int)
		assert.Zero(t, v%25)
		assert.LessOrEqual(t, v, 100)
	}
}
