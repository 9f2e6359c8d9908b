// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator account. Only the bcrypt hash of the password
// is ever stored.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Email is the login identifier, unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the users table name.
func (User) TableName() string {
	return "users"
}
