package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/industries/domain/entity"
	"orgair_backend/internal/feature/industries/usecase"
	"orgair_backend/internal/platform/cache"
	"orgair_backend/internal/platform/repository"
)

// industryNamespace scopes every industry cache key.
const industryNamespace = "industries"

// industryPage is the cached form of one list page.
type industryPage struct {
	Items []entity.Industry `json:"items"`
	Total int64             `json:"total"`
}

// CachingIndustryRepository decorates an IndustryRepository with
// cache-aside reads. Industries are near-immutable reference data, so
// entries live longer than for other classes, and weight profiles
// longer still.
type CachingIndustryRepository struct {
	inner      usecase.IndustryRepository
	store      *cache.Store
	ttl        time.Duration
	weightsTTL time.Duration
	negTTL     time.Duration
}

var _ usecase.IndustryRepository = (*CachingIndustryRepository)(nil)

// NewCachingIndustryRepository decorates inner with caching. Defaults:
// 1 hour for industries, 24 hours for weight profiles, 30 seconds for
// negative entries.
func NewCachingIndustryRepository(store *cache.Store, ttl, weightsTTL, negTTL time.Duration, inner usecase.IndustryRepository) *CachingIndustryRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if weightsTTL <= 0 {
		weightsTTL = 24 * time.Hour
	}
	if negTTL <= 0 {
		negTTL = 30 * time.Second
	}
	return &CachingIndustryRepository{
		inner:      inner,
		store:      store,
		ttl:        ttl,
		weightsTTL: weightsTTL,
		negTTL:     negTTL,
	}
}

func industryKey(id uuid.UUID) string {
	return cache.Key(industryNamespace, "id", id.String())
}

func industryListKey(q repository.Query) string {
	return cache.Key(industryNamespace, "list", q.Signature())
}

func industryWeightsKey(id uuid.UUID) string {
	return cache.Key(industryNamespace, "weights", id.String())
}

func (c *CachingIndustryRepository) invalidate(ctx context.Context) {
	c.store.DeleteByPrefix(ctx, industryNamespace+":")
}

// Insert writes through and invalidates the class scope.
func (c *CachingIndustryRepository) Insert(ctx context.Context, e *entity.Industry) error {
	if err := c.inner.Insert(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates the class scope.
func (c *CachingIndustryRepository) Update(ctx context.Context, e *entity.Industry) error {
	if err := c.inner.Update(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete writes through and invalidates the class scope.
func (c *CachingIndustryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID probes the cache, falling back to the store.
func (c *CachingIndustryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Industry, error) {
	key := industryKey(id)

	var cached entity.Industry
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
func (c *CachingIndustryRepository) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Industry, int64, error) {
	key := industryListKey(q)

	var page industryPage
	if c.store.Get(ctx, key, &page) == cache.Hit {
		return page.Items, page.Total, nil
	}

	items, total, err := c.inner.FindByQuery(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	c.store.Set(ctx, key, industryPage{Items: items, Total: total}, c.ttl)
	return items, total, nil
}

// Weights caches the dimension-weight profile with the long
// configuration TTL.
func (c *CachingIndustryRepository) Weights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error) {
	key := industryWeightsKey(industryID)

	var cached map[string]float64
	switch c.store.Get(ctx, key, &cached) {
	case cache.Hit:
		return cached, nil
	case cache.HitNotFound:
		return nil, repository.ErrNotFound
	}

	out, err := c.inner.Weights(ctx, industryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.store.SetNotFound(ctx, key, c.negTTL)
		}
		return nil, err
	}

	c.store.Set(ctx, key, out, c.weightsTTL)
	return out, nil
}
