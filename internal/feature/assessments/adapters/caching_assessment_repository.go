package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/assessments/domain/entity"
	"orgair_backend/internal/feature/assessments/usecase"
	"orgair_backend/internal/platform/cache"
	"orgair_backend/internal/platform/repository"
)

// assessmentNamespace scopes every assessment cache key.
const assessmentNamespace = "assessments"

// assessmentPage is the cached form of one list page.
type assessmentPage struct {
	Items []entity.Assessment `json:"items"`
	Total int64               `json:"total"`
}

// CachingAssessmentRepository decorates an AssessmentRepository with
// cache-aside reads. Invalidation runs after every successful write,
// including score upserts and the approve swap, since each of those
// changes what point and list reads should return.
type CachingAssessmentRepository struct {
	inner  usecase.AssessmentRepository
	store  *cache.Store
	ttl    time.Duration
	negTTL time.Duration
}

var _ usecase.AssessmentRepository = (*CachingAssessmentRepository)(nil)

// NewCachingAssessmentRepository decorates inner with caching. If ttl
// is 0 it defaults to 2 minutes; negTTL defaults to 30 seconds.
func NewCachingAssessmentRepository(store *cache.Store, ttl, negTTL time.Duration, inner usecase.AssessmentRepository) *CachingAssessmentRepository {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	if negTTL <= 0 {
		negTTL = 30 * time.Second
	}
	return &CachingAssessmentRepository{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		negTTL: negTTL,
	}
}

func assessmentKey(id uuid.UUID) string {
	return cache.Key(assessmentNamespace, "id", id.String())
}

func assessmentListKey(q repository.Query) string {
	return cache.Key(assessmentNamespace, "list", q.Signature())
}

func (c *CachingAssessmentRepository) invalidate(ctx context.Context) {
	c.store.DeleteByPrefix(ctx, assessmentNamespace+":")
}

// Insert writes through and invalidates the class scope.
func (c *CachingAssessmentRepository) Insert(ctx context.Context, a *entity.Assessment) error {
	if err := c.inner.Insert(ctx, a); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates the class scope.
func (c *CachingAssessmentRepository) Update(ctx context.Context, a *entity.Assessment) error {
	if err := c.inner.Update(ctx, a); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete passes through; assessments are never deleted, so the inner
// call fails before any invalidation question arises.
func (c *CachingAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID probes the cache, falling back to the store and caching
// the answer, including brief negative entries for not-found.
func (c *CachingAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assessment, error) {
	key := assessmentKey(id)

	var cached entity.Assessment
	switch c.store.Get(ctx, key, &cached) {
	case cache.Hit:
		return &cached, nil
	case cache.HitNotFound:
		return nil, repository.ErrNotFound
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.store.SetNotFound(ctx, key, c.negTTL)
		}
		return nil, err
	}

	c.store.Set(ctx, key, out, c.ttl)
	return out, nil
}

// FindByQuery caches list pages under the canonical query signature.
func (c *CachingAssessmentRepository) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Assessment, int64, error) {
	key := assessmentListKey(q)

	var page assessmentPage
	if c.store.Get(ctx, key, &page) == cache.Hit {
		return page.Items, page.Total, nil
	}

	items, total, err := c.inner.FindByQuery(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	c.store.Set(ctx, key, assessmentPage{Items: items, Total: total}, c.ttl)
	return items, total, nil
}

// UpsertScore writes through and invalidates the class scope: the
// parent assessment's cached form embeds its scores.
func (c *CachingAssessmentRepository) UpsertScore(ctx context.Context, score *entity.DimensionScore) error {
	if err := c.inner.UpsertScore(ctx, score); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// ApproveSwap runs the atomic swap at the store, then invalidates the
// class scope; the swap changes two assessments at once.
func (c *CachingAssessmentRepository) ApproveSwap(ctx context.Context, companyID, assessmentID uuid.UUID) error {
	if err := c.inner.ApproveSwap(ctx, companyID, assessmentID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}
