// Package dto defines data transfer objects for the documents HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRes represents document metadata in API responses.
type DocumentRes struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// DownloadRes carries a time-limited download URL.
type DownloadRes struct {
	URL string `json:"url"`
}
