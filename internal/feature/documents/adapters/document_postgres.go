// Package adapters provides repository implementations for the documents feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgair_backend/internal/feature/documents/domain/entity"
	"orgair_backend/internal/feature/documents/usecase"
	"orgair_backend/internal/platform/repository"
)

// documentPostgres is the Postgres implementation of DocumentRepository.
type documentPostgres struct {
	db *gorm.DB
}

var _ usecase.DocumentRepository = (*documentPostgres)(nil)

// NewDocumentPostgres creates a documentPostgres over the given connection.
func NewDocumentPostgres(db *gorm.DB) *documentPostgres {
	return &documentPostgres{db: db}
}

// Insert persists document metadata.
func (r *documentPostgres) Insert(ctx context.Context, d *entity.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(d).Error
}

// Update saves document metadata in place.
func (r *documentPostgres) Update(ctx context.Context, d *entity.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// FindByID retrieves one document's metadata.
func (r *documentPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var d entity.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByQuery returns a page of documents, newest first.
func (r *documentPostgres) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Document, int64, error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&entity.Document{})
	if len(q.Filters) > 0 {
		base = base.Where(q.Filters)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Document
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

// Delete removes document metadata.
func (r *documentPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
