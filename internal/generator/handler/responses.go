package handler

import (
	"dummygen/internal/generator/format"
	"dummygen/internal/generator/models"
)

// GenerateResponse is the JSON response for POST /generate.
type GenerateResponse struct {
	Data   []models.Record `json:"data"`
	Count  int             `json:"count"`
	Format string          `json:"format"`
}

// FromRecords builds the JSON envelope.
func FromRecords(records []models.Record) *GenerateResponse {
	if records == nil {
		records = []models.Record{}
	}
	return &GenerateResponse{
		Data:   records,
		Count:  len(records),
		Format: string(format.JSON),
	}
}
