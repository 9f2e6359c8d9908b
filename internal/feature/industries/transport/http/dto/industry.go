// Package dto defines data transfer objects for the industries HTTP API.
package dto

import "github.com/google/uuid"

// IndustryRes represents an industry in API responses.
type IndustryRes struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WeightsRes represents an industry's dimension-weight profile.
type WeightsRes struct {
	IndustryID uuid.UUID          `json:"industry_id"`
	Weights    map[string]float64 `json:"weights"`
}
