// Package entity defines the domain models for the companies feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is a portfolio company under evaluation. Company names are
// unique within an industry; the check runs against the authoritative
// store, never the cache. Deletion is soft: rows keep is_deleted and
// every query filters on it.
type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`

	// Ticker is optional and normalized to uppercase. Empty means the
	// company is not publicly traded.
	Ticker string `gorm:"size:16" json:"ticker,omitempty"`

	IndustryID uuid.UUID `gorm:"type:uuid;not null;index" json:"industry_id"`

	// PositionFactor reflects market/competitive positioning, bounded
	// to [-1.0, 1.0].
	PositionFactor float64 `gorm:"not null;default:0" json:"position_factor"`

	IsDeleted bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the companies table name.
func (Company) TableName() string {
	return "companies"
}
