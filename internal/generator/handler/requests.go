package handler

import (
	"bytes"
	"encoding/json"

	"dummygen/internal/generator/format"
	"dummygen/internal/generator/models"
	dErrors "dummygen/pkg/domain-errors"
)

// DefaultCount is used when a request omits count.
const DefaultCount = 10

// GenerateRequest is the HTTP request body for POST /generate.
type GenerateRequest struct {
	Schema            json.RawMessage `json:"schema"`
	Count             *int            `json:"count"`
	Format            string          `json:"format"`
	Seed              *int64          `json:"seed"`
	StrictConstraints *bool           `json:"strict_constraints"`
	Download          bool            `json:"download"`

	// Parsed values (populated by Validate)
	parsedSchema models.Schema
	parsedFormat format.Format
}

// Normalize applies defaults before validation.
func (r *GenerateRequest) Normalize() {
	if r.Count == nil {
		n := DefaultCount
		r.Count = &n
	}
	if r.Format == "" {
		r.Format = string(format.JSON)
	}
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	raw := bytes.TrimSpace(r.Schema)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return dErrors.New(dErrors.CodeValidation, "Schema cannot be empty")
	}
	schema, err := models.ParseSchema(raw)
	if err != nil {
		return err
	}
	if len(schema) == 0 {
		return dErrors.New(dErrors.CodeValidation, "Schema cannot be empty")
	}
	r.parsedSchema = schema

	if r.Count == nil || *r.Count < 1 {
		return dErrors.New(dErrors.CodeValidation, "count must be at least 1")
	}

	f, err := format.Parse(r.Format)
	if err != nil {
		return err
	}
	r.parsedFormat = f
	return nil
}

// ParsedSchema returns the validated schema.
func (r *GenerateRequest) ParsedSchema() models.Schema {
	return r.parsedSchema
}

// ParsedFormat returns the validated output format.
func (r *GenerateRequest) ParsedFormat() format.Format {
	return r.parsedFormat
}
