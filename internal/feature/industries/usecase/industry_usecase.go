// Package usecase implements the business logic for the industries feature.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/industries/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// IndustryRepository abstracts the industry store gateway. Following
// Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type IndustryRepository interface {
	repository.Repository[entity.Industry]

	// Weights returns the industry's dimension-weight profile keyed by
	// dimension name.
	Weights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error)
}

// industryUsecase serves reference-data reads. Industries are
// immutable once referenced, so there are no write operations here.
type industryUsecase struct {
	industries IndustryRepository
}

// NewIndustryUsecase creates a new industryUsecase.
func NewIndustryUsecase(industries IndustryRepository) *industryUsecase {
	return &industryUsecase{industries: industries}
}

// ListIndustries returns all industries.
func (u *industryUsecase) ListIndustries(ctx context.Context) ([]entity.Industry, error) {
	out, _, err := u.industries.FindByQuery(ctx, repository.Query{
		Page:     1,
		PageSize: repository.MaxPageSize,
	})
	return out, err
}

// GetIndustry returns one industry by id.
func (u *industryUsecase) GetIndustry(ctx context.Context, id uuid.UUID) (*entity.Industry, error) {
	return u.industries.FindByID(ctx, id)
}

// GetWeights returns the industry's dimension-weight profile.
func (u *industryUsecase) GetWeights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error) {
	return u.industries.Weights(ctx, industryID)
}
