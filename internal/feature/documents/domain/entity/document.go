// Package entity defines the domain models for the documents feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a raw document blob stored in object
// storage. The blob itself lives under StorageKey; this row is the
// record of it.
type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Filename    string `gorm:"size:512;not null" json:"filename"`
	ContentType string `gorm:"size:255;not null" json:"content_type"`
	SizeBytes   int64  `gorm:"not null" json:"size_bytes"`
	StorageKey  string `gorm:"size:1024;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the documents table name.
func (Document) TableName() string {
	return "documents"
}
