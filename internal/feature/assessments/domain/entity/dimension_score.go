package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dimension is one of the seven fixed categories of AI-readiness
// evaluation.
type Dimension string

const (
	DimensionStrategy   Dimension = "strategy"
	DimensionData       Dimension = "data"
	DimensionTechnology Dimension = "technology"
	DimensionTalent     Dimension = "talent"
	DimensionGovernance Dimension = "governance"
	DimensionOperations Dimension = "operations"
	DimensionCulture    Dimension = "culture"
)

// AllDimensions returns the closed dimension set in canonical order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionStrategy,
		DimensionData,
		DimensionTechnology,
		DimensionTalent,
		DimensionGovernance,
		DimensionOperations,
		DimensionCulture,
	}
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	for _, known := range AllDimensions() {
		if d == known {
			return true
		}
	}
	return false
}

// DimensionScore is one dimension's assessment within an Assessment.
// Confidence is a metadata signal carried for reporting and filtering;
// it does not rescale the weighted aggregate.
type DimensionScore struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:scores_assessment_dimension,priority:1" json:"assessment_id"`
	Dimension    Dimension `gorm:"size:32;not null;uniqueIndex:scores_assessment_dimension,priority:2" json:"dimension"`

	Score      float64 `gorm:"not null" json:"score"`      // 0..100
	Confidence float64 `gorm:"not null" json:"confidence"` // 0..1
	Weight     float64 `gorm:"not null" json:"weight"`     // 0..1

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the dimension scores table name.
func (DimensionScore) TableName() string {
	return "dimension_scores"
}
