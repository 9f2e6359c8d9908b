// Package dto defines data transfer objects for the companies HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCompanyReq represents the request body for creating a company.
type CreateCompanyReq struct {
	Name           string    `json:"name" binding:"required"`
	Ticker         string    `json:"ticker"`
	IndustryID     uuid.UUID `json:"industry_id" binding:"required"`
	PositionFactor float64   `json:"position_factor" binding:"gte=-1,lte=1"`
}

// UpdateCompanyReq represents a partial update; absent fields are
// left unchanged.
type UpdateCompanyReq struct {
	Name           *string    `json:"name"`
	Ticker         *string    `json:"ticker"`
	IndustryID     *uuid.UUID `json:"industry_id"`
	PositionFactor *float64   `json:"position_factor" binding:"omitempty,gte=-1,lte=1"`
}

// CompanyRes represents a company in API responses.
type CompanyRes struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Ticker         string    `json:"ticker,omitempty"`
	IndustryID     uuid.UUID `json:"industry_id"`
	PositionFactor float64   `json:"position_factor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
