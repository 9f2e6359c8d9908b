// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"gorm.io/gorm"

	assessmentadapters "orgair_backend/internal/feature/assessments/adapters"
	assessmentusecase "orgair_backend/internal/feature/assessments/usecase"
	companyadapters "orgair_backend/internal/feature/companies/adapters"
	companyusecase "orgair_backend/internal/feature/companies/usecase"
	industryadapters "orgair_backend/internal/feature/industries/adapters"
	industryusecase "orgair_backend/internal/feature/industries/usecase"
	"orgair_backend/internal/platform/cache"
	"orgair_backend/internal/platform/config"
)

// NewCompanyRepository builds the company store gateway wrapped in the
// caching decorator.
func NewCompanyRepository(db *gorm.DB, store *cache.Store, cfg config.CacheConfig) companyusecase.CompanyRepository {
	return companyadapters.NewCachingCompanyRepository(
		store, cfg.CompanyTTL, cfg.NotFoundTTL,
		companyadapters.NewCompanyPostgres(db),
	)
}

// NewAssessmentRepository builds the assessment store gateway wrapped
// in the caching decorator.
func NewAssessmentRepository(db *gorm.DB, store *cache.Store, cfg config.CacheConfig) assessmentusecase.AssessmentRepository {
	return assessmentadapters.NewCachingAssessmentRepository(
		store, cfg.AssessmentTTL, cfg.NotFoundTTL,
		assessmentadapters.NewAssessmentPostgres(db),
	)
}

// NewIndustryRepository builds the industry store gateway wrapped in
// the caching decorator.
func NewIndustryRepository(db *gorm.DB, store *cache.Store, cfg config.CacheConfig) industryusecase.IndustryRepository {
	return industryadapters.NewCachingIndustryRepository(
		store, cfg.IndustryTTL, cfg.WeightsTTL, cfg.NotFoundTTL,
		industryadapters.NewIndustryPostgres(db),
	)
}
