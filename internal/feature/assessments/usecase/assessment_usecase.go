// Package usecase orchestrates the assessment lifecycle: validation
// and state-machine guards run first, the store write follows, and
// cache invalidation happens only after the write succeeds (the
// caching repository decorator owns that ordering).
package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/assessments/domain"
	"orgair_backend/internal/feature/assessments/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// AssessmentRepository abstracts the assessment store gateway.
// ApproveSwap is the single atomic primitive behind the "at most one
// approved assessment per company" invariant.
type AssessmentRepository interface {
	repository.Repository[entity.Assessment]

	// UpsertScore inserts or replaces one dimension score.
	UpsertScore(ctx context.Context, score *entity.DimensionScore) error

	// ApproveSwap demotes the company's current approved assessment to
	// superseded (if any) and promotes the given submitted assessment
	// to approved, in one store transaction. A mid-sequence failure is
	// surfaced as a conflict, never retried silently.
	ApproveSwap(ctx context.Context, companyID, assessmentID uuid.UUID) error
}

// CompanyDirectory resolves a company's governing industry.
type CompanyDirectory interface {
	IndustryOf(ctx context.Context, companyID uuid.UUID) (uuid.UUID, error)
}

// WeightProvider returns an industry's dimension-weight profile keyed
// by dimension name.
type WeightProvider interface {
	Weights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error)
}

// assessmentUsecase implements the assessment operations.
type assessmentUsecase struct {
	assessments AssessmentRepository
	companies   CompanyDirectory
	weights     WeightProvider
}

// NewAssessmentUsecase creates a new assessmentUsecase.
func NewAssessmentUsecase(assessments AssessmentRepository, companies CompanyDirectory, weights WeightProvider) *assessmentUsecase {
	return &assessmentUsecase{
		assessments: assessments,
		companies:   companies,
		weights:     weights,
	}
}

// CreateAssessment opens a new draft assessment for a company.
func (u *assessmentUsecase) CreateAssessment(ctx context.Context, companyID uuid.UUID, typ entity.AssessmentType) (*entity.Assessment, error) {
	if !typ.Valid() {
		return nil, &domain.ValidationError{Reason: "unknown assessment type"}
	}

	// Verifies the company exists before any write.
	if _, err := u.companies.IndustryOf(ctx, companyID); err != nil {
		return nil, err
	}

	a := &entity.Assessment{
		ID:        uuid.New(),
		CompanyID: companyID,
		Type:      typ,
		Status:    entity.StatusDraft,
	}
	if err := u.assessments.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAssessment returns one assessment with its dimension scores.
func (u *assessmentUsecase) GetAssessment(ctx context.Context, id uuid.UUID) (*entity.Assessment, error) {
	return u.assessments.FindByID(ctx, id)
}

// ListByCompany returns a page of the company's assessments.
func (u *assessmentUsecase) ListByCompany(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]entity.Assessment, int64, error) {
	return u.assessments.FindByQuery(ctx, repository.Query{
		Filters:  map[string]any{"company_id": companyID},
		Page:     page,
		PageSize: pageSize,
	})
}

// AddDimensionScore records or replaces one dimension score on an
// editable assessment. When weight is nil the industry profile value
// applies; an explicit weight that diverges from the profile marks
// the assessment as weight-overridden, which forces full
// re-validation on submit.
func (u *assessmentUsecase) AddDimensionScore(ctx context.Context, assessmentID uuid.UUID, dim entity.Dimension, score, confidence float64, weight *float64) (*entity.Assessment, error) {
	a, err := u.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if !a.Status.Editable() {
		return nil, domain.ErrAssessmentLocked
	}

	profile, err := u.profileFor(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}

	w, ok := profile[dim]
	if !ok {
		return nil, &domain.ValidationError{
			Reason:     "dimension not in industry weight profile",
			Dimensions: []entity.Dimension{dim},
		}
	}
	overridden := false
	if weight != nil {
		if math.Abs(*weight-w) > domain.WeightSumTolerance {
			overridden = true
		}
		w = *weight
	}

	if err := domain.ValidateScoreFields(dim, score, confidence, w); err != nil {
		return nil, err
	}

	ds := &entity.DimensionScore{
		ID:           uuid.New(),
		AssessmentID: a.ID,
		Dimension:    dim,
		Score:        score,
		Confidence:   confidence,
		Weight:       w,
	}
	if err := u.assessments.UpsertScore(ctx, ds); err != nil {
		return nil, err
	}

	if overridden && !a.WeightsOverridden {
		a.WeightsOverridden = true
		if err := u.assessments.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	return u.assessments.FindByID(ctx, assessmentID)
}

// TransitionStatus moves an assessment through the lifecycle state
// machine. Requesting the current status is a no-op returning the
// unchanged assessment, which keeps retried and late-landing requests
// harmless. All guards run before any mutation.
func (u *assessmentUsecase) TransitionStatus(ctx context.Context, id uuid.UUID, next entity.Status) (*entity.Assessment, error) {
	if !next.Valid() {
		return nil, &domain.ValidationError{Reason: "unknown status"}
	}

	a, err := u.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Status == next {
		return a, nil
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, &domain.TransitionError{From: a.Status, To: next}
	}

	switch next {
	case entity.StatusSubmitted:
		profile, err := u.profileFor(ctx, a.CompanyID)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateScores(a.Scores, profile); err != nil {
			return nil, err
		}
		if !a.WeightsOverridden {
			if err := weightsMatchProfile(a.Scores, profile); err != nil {
				return nil, err
			}
		}
		overall := domain.AggregateScore(a.Scores)
		a.OverallScore = &overall
		a.Status = entity.StatusSubmitted
		if err := u.assessments.Update(ctx, a); err != nil {
			return nil, err
		}

	case entity.StatusApproved:
		// Demotion of the prior approved assessment and promotion of
		// this one apply as a single atomic unit at the store.
		if err := u.assessments.ApproveSwap(ctx, a.CompanyID, a.ID); err != nil {
			return nil, err
		}

	default:
		a.Status = next
		if err := u.assessments.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	return u.assessments.FindByID(ctx, id)
}

// profileFor loads and types the industry weight profile governing a
// company's assessments.
func (u *assessmentUsecase) profileFor(ctx context.Context, companyID uuid.UUID) (map[entity.Dimension]float64, error) {
	industryID, err := u.companies.IndustryOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	raw, err := u.weights.Weights(ctx, industryID)
	if err != nil {
		return nil, err
	}

	profile := make(map[entity.Dimension]float64, len(raw))
	for name, w := range raw {
		d := entity.Dimension(name)
		if !d.Valid() {
			return nil, &domain.ValidationError{
				Reason:     "industry profile contains unknown dimension",
				Dimensions: []entity.Dimension{d},
			}
		}
		profile[d] = w
	}
	return profile, nil
}

// weightsMatchProfile enforces that non-overridden assessments carry
// exactly the industry profile weights.
func weightsMatchProfile(scores []entity.DimensionScore, profile map[entity.Dimension]float64) error {
	var diverged []entity.Dimension
	for _, s := range scores {
		if w, ok := profile[s.Dimension]; ok && math.Abs(s.Weight-w) > domain.WeightSumTolerance {
			diverged = append(diverged, s.Dimension)
		}
	}
	if len(diverged) > 0 {
		return &domain.ValidationError{
			Reason:     "weights diverge from industry profile without an explicit override",
			Dimensions: diverged,
		}
	}
	return nil
}
