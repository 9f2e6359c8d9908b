// Package entity defines the domain models for the assessments feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentType classifies why an assessment was opened.
type AssessmentType string

const (
	TypeScreening    AssessmentType = "screening"
	TypeDueDiligence AssessmentType = "due_diligence"
	TypeQuarterly    AssessmentType = "quarterly"
	TypeExitPrep     AssessmentType = "exit_prep"
)

// Valid reports whether t is a known assessment type.
func (t AssessmentType) Valid() bool {
	switch t {
	case TypeScreening, TypeDueDiligence, TypeQuarterly, TypeExitPrep:
		return true
	}
	return false
}

// Status is the lifecycle state of an assessment. Assessments are
// never physically deleted; superseded replaces deletion.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusApproved   Status = "approved"
	StatusSuperseded Status = "superseded"
)

// statusTransitions is the full adjacency table. draft and in_progress
// are mutually reachable for score editing; superseded is terminal.
var statusTransitions = map[Status][]Status{
	StatusDraft:      {StatusInProgress},
	StatusInProgress: {StatusDraft, StatusSubmitted},
	StatusSubmitted:  {StatusApproved, StatusSuperseded},
	StatusApproved:   {StatusSuperseded},
	StatusSuperseded: {},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the adjacency table allows moving
// from s to next. A same-status transition is not an edge here; the
// use case treats it as a no-op before consulting the table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range statusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Editable reports whether dimension scores may still be changed.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusInProgress
}

// Assessment is one AI-readiness evaluation of a company. At most one
// assessment per company may hold the approved status at any time.
type Assessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index:assessments_company_status,priority:1" json:"company_id"`
	Type      AssessmentType `gorm:"size:32;not null" json:"assessment_type"`
	Status    Status         `gorm:"size:32;not null;index:assessments_company_status,priority:2" json:"status"`

	// OverallScore is derived by the scoring engine; nil until the
	// assessment passes validation on its way into submitted.
	OverallScore *float64 `json:"overall_score"`

	// WeightsOverridden marks that per-assessment weights deliberately
	// diverge from the industry profile and were re-validated in full.
	WeightsOverridden bool `gorm:"not null;default:false" json:"weights_overridden"`

	Scores []DimensionScore `gorm:"foreignKey:AssessmentID" json:"scores,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the assessments table name.
func (Assessment) TableName() string {
	return "assessments"
}
