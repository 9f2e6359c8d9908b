// Package adapters provides repository implementations for the assessments feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orgair_backend/internal/feature/assessments/domain/entity"
	"orgair_backend/internal/feature/assessments/usecase"
	"orgair_backend/internal/platform/repository"
)

// ErrNeverDeleted is returned by Delete: assessments are never
// physically removed, superseding replaces deletion.
var ErrNeverDeleted = errors.New("assessments are never deleted; supersede instead")

// assessmentPostgres is the Postgres implementation of AssessmentRepository.
type assessmentPostgres struct {
	db *gorm.DB
}

var _ usecase.AssessmentRepository = (*assessmentPostgres)(nil)

// NewAssessmentPostgres creates an assessmentPostgres over the given connection.
func NewAssessmentPostgres(db *gorm.DB) *assessmentPostgres {
	return &assessmentPostgres{db: db}
}

// Insert persists a new assessment. Scores travel through UpsertScore,
// never through the association.
func (r *assessmentPostgres) Insert(ctx context.Context, a *entity.Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

// Update saves assessment fields, leaving the score rows alone.
func (r *assessmentPostgres) Update(ctx context.Context, a *entity.Assessment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

// FindByID retrieves one assessment with its dimension scores.
func (r *assessmentPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assessment, error) {
	var a entity.Assessment
	err := r.db.WithContext(ctx).
		Preload("Scores").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByQuery returns a page of assessments, newest first.
func (r *assessmentPostgres) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Assessment, int64, error) {
	q = q.Normalize()

	base := r.db.WithContext(ctx).Model(&entity.Assessment{})
	if len(q.Filters) > 0 {
		base = base.Where(q.Filters)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.Assessment
	err := base.
		Preload("Scores").
		Order("created_at DESC").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete is unsupported by design.
func (r *assessmentPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	return ErrNeverDeleted
}

// UpsertScore inserts a dimension score or replaces the existing one
// for the same assessment and dimension.
func (r *assessmentPostgres) UpsertScore(ctx context.Context, score *entity.DimensionScore) error {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "dimension"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "confidence", "weight", "updated_at"}),
	}).Create(score).Error
}

// ApproveSwap demotes the company's current approved assessment and
// promotes the given submitted one inside a single transaction, so
// readers never observe zero or two approved assessments for one
// company. Losing the promotion race surfaces as ErrConflict.
func (r *assessmentPostgres) ApproveSwap(ctx context.Context, companyID, assessmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// Demotion first: if anything fails past this point the
		// transaction rolls back as a unit.
		err := tx.Model(&entity.Assessment{}).
			Where("company_id = ? AND status = ? AND id <> ?",
				companyID, entity.StatusApproved, assessmentID).
			Updates(map[string]any{
				"status":     entity.StatusSuperseded,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		result := tx.Model(&entity.Assessment{}).
			Where("id = ? AND company_id = ? AND status = ?",
				assessmentID, companyID, entity.StatusSubmitted).
			Updates(map[string]any{
				"status":     entity.StatusApproved,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The assessment moved under us (concurrent approval or
			// supersede). Surfaced, never retried silently.
			return repository.ErrConflict
		}
		return nil
	})
}
