// Package format renders generated records as JSON or CSV.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dummygen/internal/generator/models"
	dErrors "dummygen/pkg/domain-errors"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// Parse validates a requested format name.
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV:
		return f, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "Format must be 'json' or 'csv'")
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	if f == CSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Filename is the attachment name used for downloads.
func (f Format) Filename() string {
	return "dummygen." + string(f)
}

// Write encodes records in format f.
func Write(w io.Writer, f Format, records []models.Record) error {
	switch f {
	case JSON:
		return WriteJSON(w, records)
	case CSV:
		return WriteCSV(w, records)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes a header row from the first record's keys and one row per
// record. Records are assumed to share the first record's shape; a missing
// key renders as an empty cell. No records means no output.
func WriteCSV(w io.Writer, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	header := records[0].Keys()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, name := range header {
			v, ok := rec.Get(name)
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = Value(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Value renders one scalar for a CSV cell.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
