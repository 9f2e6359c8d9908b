// Package dto defines data transfer objects for the assessments HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/assessments/domain/entity"
)

// CreateAssessmentReq represents the request body for opening a new
// assessment.
type CreateAssessmentReq struct {
	Type string `json:"type" binding:"required"`
}

// ScoreReq represents the request body for recording a dimension
// score. Weight is optional; when absent the industry profile value
// applies.
type ScoreReq struct {
	Dimension  string   `json:"dimension" binding:"required"`
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Weight     *float64 `json:"weight"`
}

// StatusReq represents the request body for a lifecycle transition.
type StatusReq struct {
	Status string `json:"status" binding:"required"`
}

// ScoreRes represents a dimension score in API responses.
type ScoreRes struct {
	Dimension  string  `json:"dimension"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
}

// AssessmentRes represents an assessment in API responses.
type AssessmentRes struct {
	ID                uuid.UUID  `json:"id"`
	CompanyID         uuid.UUID  `json:"company_id"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	OverallScore      *float64   `json:"overall_score,omitempty"`
	WeightsOverridden bool       `json:"weights_overridden"`
	Scores            []ScoreRes `json:"scores"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// FromAssessment converts an entity into its response form.
func FromAssessment(a *entity.Assessment) AssessmentRes {
	scores := make([]ScoreRes, 0, len(a.Scores))
	for _, s := range a.Scores {
		scores = append(scores, ScoreRes{
			Dimension:  string(s.Dimension),
			Score:      s.Score,
			Confidence: s.Confidence,
			Weight:     s.Weight,
		})
	}
	return AssessmentRes{
		ID:                a.ID,
		CompanyID:         a.CompanyID,
		Type:              string(a.Type),
		Status:            string(a.Status),
		OverallScore:      a.OverallScore,
		WeightsOverridden: a.WeightsOverridden,
		Scores:            scores,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
