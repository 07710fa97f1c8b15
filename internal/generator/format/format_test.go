package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dummygen/internal/generator/models"
	dErrors "dummygen/pkg/domain-errors"
)

var records = []models.Record{
	{{Name: "name", Value: "Ada, Countess"}, {Name: "age", Value: 36}, {Name: "score", Value: 4.5}, {Name: "ok", Value: true}},
	{{Name: "name", Value: `Quote "q"`}, {Name: "age", Value: int64(7)}, {Name: "score", Value: 1e21}, {Name: "ok", Value: false}},
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "CSV": CSV, " csv ": CSV} {
		got, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Parse("xml")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "Format must be 'json' or 'csv'", err.Error())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	want := [][]string{
		{"name", "age", "score", "ok"},
		{"Ada, Countess", "36", "4.5", "true"},
		{`Quote "q"`, "7", "1000000000000000000000", "false"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("csv rows (-want +got):\n%s", diff)
	}

	t.Run("missing keys render empty", func(t *testing.T) {
		var buf bytes.Buffer
		ragged := []models.Record{
			{{Name: "a", Value: 1}, {Name: "b", Value: 2}},
			{{Name: "b", Value: 3}},
		}
		require.NoError(t, WriteCSV(&buf, ragged))
		assert.Equal(t, "a,b\n1,2\n,3\n", buf.String())
	})

	t.Run("no records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, nil))
		assert.Empty(t, buf.String())
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, records[:1]))
	assert.Equal(t, `[
  {
    "name": "Ada, Countess",
    "age": 36,
    "score": 4.5,
    "ok": true
  }
]
`, buf.String())

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 1)

	t.Run("no records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteJSON(&buf, nil))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "dummygen.csv", CSV.Filename())
	assert.Equal(t, "dummygen.json", JSON.Filename())
	assert.Equal(t, "text/csv; charset=utf-8", CSV.ContentType())
	assert.Equal(t, "application/json", JSON.ContentType())
}
