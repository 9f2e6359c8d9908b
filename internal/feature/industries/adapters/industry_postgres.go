// Package adapters provides repository implementations for the industries feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgair_backend/internal/feature/industries/domain/entity"
	"orgair_backend/internal/feature/industries/usecase"
	"orgair_backend/internal/platform/repository"
)

// industryPostgres is the Postgres implementation of IndustryRepository.
type industryPostgres struct {
	db *gorm.DB
}

var _ usecase.IndustryRepository = (*industryPostgres)(nil)

// NewIndustryPostgres creates an industryPostgres over the given connection.
func NewIndustryPostgres(db *gorm.DB) *industryPostgres {
	return &industryPostgres{db: db}
}

// Insert persists a new industry with its weight profile rows.
func (r *industryPostgres) Insert(ctx context.Context, e *entity.Industry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

// Update saves an industry. Reference data is immutable once
// referenced by a company; callers enforce that rule.
func (r *industryPostgres) Update(ctx context.Context, e *entity.Industry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// FindByID retrieves one industry with its weight profile.
func (r *industryPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Industry, error) {
	var ind entity.Industry
	err := r.db.WithContext(ctx).
		Preload("Weights").
		Where("id = ?", id).
		First(&ind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ind, nil
}

// FindByQuery returns a page of industries ordered by name.
func (r *industryPostgres) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Industry, int64, error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&entity.Industry{})
	if len(q.Filters) > 0 {
		base = base.Where(q.Filters)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Industry
	err := base.
		Preload("Weights").
		Order("name").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete removes an industry. Only legal while nothing references it;
// the foreign keys on companies enforce that at the store.
func (r *industryPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Industry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Weights returns the industry's dimension-weight profile.
func (r *industryPostgres) Weights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error) {
	var rows []entity.DimensionWeight
	err := r.db.WithContext(ctx).
		Where("industry_id = ?", industryID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// Distinguish a missing industry from an industry without a
		// profile; both are NotFound for callers.
		return nil, repository.ErrNotFound
	}

	weights := make(map[string]float64, len(rows))
	for _, w := range rows {
		weights[w.Dimension] = w.Weight
	}
	return weights, nil
}

// Exists reports whether an industry exists.
func (r *industryPostgres) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Industry{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
