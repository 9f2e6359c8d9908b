// Package usecase implements the business logic for the companies feature.
package usecase

import "errors"

var (
	// ErrDuplicateCompany is returned when a company with the same name
	// already exists in the industry.
	ErrDuplicateCompany = errors.New("company with this name already exists in the industry")

	// ErrIndustryNotFound is returned when the referenced industry does
	// not exist.
	ErrIndustryNotFound = errors.New("industry not found")

	// ErrInvalidPositionFactor is returned when position_factor falls
	// outside [-1.0, 1.0].
	ErrInvalidPositionFactor = errors.New("position_factor must be between -1.0 and 1.0")

	// ErrEmptyName is returned when a company name is blank.
	ErrEmptyName = errors.New("company name must not be empty")
)
