// Package entity defines the domain models for the industries feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Industry is long-lived reference data. Once a company references an
// industry, the industry and its weight profile are immutable.
type Industry struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null;uniqueIndex" json:"name"`

	// Weights is the default dimension-weight set applied to
	// assessments of companies in this industry. It is the single
	// source of truth for weight values.
	Weights []DimensionWeight `gorm:"foreignKey:IndustryID" json:"weights,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the industries table name.
func (Industry) TableName() string {
	return "industries"
}

// DimensionWeight is one row of an industry's weight profile.
type DimensionWeight struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	IndustryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:weights_industry_dimension,priority:1" json:"-"`
	Dimension  string    `gorm:"size:32;not null;uniqueIndex:weights_industry_dimension,priority:2" json:"dimension"`
	Weight     float64   `gorm:"not null" json:"weight"`
}

// TableName sets the weight profile table name.
func (DimensionWeight) TableName() string {
	return "industry_dimension_weights"
}
