package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/companies/domain/entity"
	"orgair_backend/internal/feature/companies/usecase"
	"orgair_backend/internal/platform/cache"
	"orgair_backend/internal/platform/repository"
)

// companyNamespace scopes every company cache key, so one prefix
// invalidation covers the point entries and all list pages.
const companyNamespace = "companies"

// companyPage is the cached form of one list page.
type companyPage struct {
	Items []entity.Company `json:"items"`
	Total int64            `json:"total"`
}

// CachingCompanyRepository decorates a CompanyRepository with
// cache-aside reads and write-through invalidation. The store stays
// the durable truth; entries are never mutated in place, a write
// always invalidates and lets the next read refetch.
type CachingCompanyRepository struct {
	inner  usecase.CompanyRepository
	store  *cache.Store
	ttl    time.Duration
	negTTL time.Duration
}

var _ usecase.CompanyRepository = (*CachingCompanyRepository)(nil)

// NewCachingCompanyRepository decorates inner with caching. If ttl is
// 0 it defaults to 5 minutes; negTTL defaults to 30 seconds.
func NewCachingCompanyRepository(store *cache.Store, ttl, negTTL time.Duration, inner usecase.CompanyRepository) *CachingCompanyRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if negTTL <= 0 {
		negTTL = 30 * time.Second
	}
	return &CachingCompanyRepository{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		negTTL: negTTL,
	}
}

func companyKey(id uuid.UUID) string {
	return cache.Key(companyNamespace, "id", id.String())
}

func companyListKey(q repository.Query) string {
	return cache.Key(companyNamespace, "list", q.Signature())
}

// Insert writes through to the store, then drops every cached entry
// for the class: a new company changes list pages that were valid a
// moment ago. Invalidation happens only after the write succeeds.
func (c *CachingCompanyRepository) Insert(ctx context.Context, e *entity.Company) error {
	if err := c.inner.Insert(ctx, e); err != nil {
		return err
	}
	c.store.DeleteByPrefix(ctx, companyNamespace+":")
	return nil
}

// Update writes through to the store and invalidates the class scope.
func (c *CachingCompanyRepository) Update(ctx context.Context, e *entity.Company) error {
	if err := c.inner.Update(ctx, e); err != nil {
		return err
	}
	c.store.DeleteByPrefix(ctx, companyNamespace+":")
	return nil
}

// Delete soft-deletes through the store and invalidates the class scope.
func (c *CachingCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.store.DeleteByPrefix(ctx, companyNamespace+":")
	return nil
}

// FindByID probes the cache first and falls back to the store,
// populating the cache on a miss. Not-found answers are cached
// briefly as negative entries.
func (c *CachingCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	key := companyKey(id)

	var cached entity.Company
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

// FindByQuery caches list pages under the canonical query signature,
// so distinct filters and pages never collide.
func (c *CachingCompanyRepository) FindByQuery(ctx context.Context, q repository.Query) ([]entity.Company, int64, error) {
	key := companyListKey(q)

	var page companyPage
	if c.store.Get(ctx, key, &page) == cache.Hit {
		return page.Items, page.Total, nil
	}

	items, total, err := c.inner.FindByQuery(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	c.store.Set(ctx, key, companyPage{Items: items, Total: total}, c.ttl)
	return items, total, nil
}

// CheckDuplicate always asks the store. The cache may lag behind
// writes and must never decide a uniqueness question.
func (c *CachingCompanyRepository) CheckDuplicate(ctx context.Context, name string, industryID, excludeID uuid.UUID) (bool, error) {
	return c.inner.CheckDuplicate(ctx, name, industryID, excludeID)
}
