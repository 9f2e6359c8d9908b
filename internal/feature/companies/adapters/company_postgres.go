// Package adapters provides repository implementations for the companies feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgair_backend/internal/feature/companies/domain/entity"
	"orgair_backend/internal/feature/companies/usecase"
	"orgair_backend/internal/platform/repository"
)

// companyPostgres is the Postgres implementation of CompanyRepository.
// Every read filters out soft-deleted rows.
type companyPostgres struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyPostgres)(nil)

// NewCompanyPostgres creates a companyPostgres over the given connection.
func NewCompanyPostgres(db *gorm.DB) *companyPostgres {
	return &companyPostgres{db: db}
}

// Insert persists a new company.
func (r *companyPostgres) Insert(ctx context.Context, e *entity.Company) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

// Update saves a company in place.
func (r *companyPostgres) Update(ctx context.Context, e *entity.Company) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// FindByID retrieves one active company.
func (r *companyPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var c entity.Company
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByQuery returns a page of active companies, newest first.
func (r *companyPostgres) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Company, int64, error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("is_deleted = ?", false)
	if len(q.Filters) > 0 {
		base = base.Where(q.Filters)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Company
	err := base.
		Order("created_at DESC").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete soft-deletes a company; the row stays for referential history.
func (r *companyPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CheckDuplicate reports whether another active company with the same
// name exists in the industry.
func (r *companyPostgres) CheckDuplicate(ctx context.Context, name string, industryID, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("name = ? AND industry_id = ? AND is_deleted = ?", name, industryID, false)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Exists reports whether an active company exists.
func (r *companyPostgres) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// IndustryOf returns the industry governing a company's assessments.
func (r *companyPostgres) IndustryOf(ctx context.Context, companyID uuid.UUID) (uuid.UUID, error) {
	var c entity.Company
	err := r.db.WithContext(ctx).
		Select("industry_id").
		Where("id = ? AND is_deleted = ?", companyID, false).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, repository.ErrNotFound
		}
		return uuid.Nil, err
	}
	return c.IndustryID, nil
}
