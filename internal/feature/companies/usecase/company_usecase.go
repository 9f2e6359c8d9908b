package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/companies/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// CompanyRepository abstracts the company store gateway. Uniqueness
// checks run here, against the authoritative store: the cache may lag
// behind writes and must never decide a duplicate.
type CompanyRepository interface {
	repository.Repository[entity.Company]

	// CheckDuplicate reports whether another active company with the
	// same name exists in the industry. excludeID skips the company
	// being updated; pass uuid.Nil on create.
	CheckDuplicate(ctx context.Context, name string, industryID, excludeID uuid.UUID) (bool, error)
}

// IndustryDirectory answers existence checks for industry references.
type IndustryDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CompanyUpdate carries a partial update; nil fields are unchanged.
type CompanyUpdate struct {
	Name           *string
	Ticker         *string
	IndustryID     *uuid.UUID
	PositionFactor *float64
}

// companyUsecase implements company CRUD with soft-delete semantics.
type companyUsecase struct {
	companies  CompanyRepository
	industries IndustryDirectory
}

// NewCompanyUsecase creates a new companyUsecase.
func NewCompanyUsecase(companies CompanyRepository, industries IndustryDirectory) *companyUsecase {
	return &companyUsecase{companies: companies, industries: industries}
}

// normalizeTicker uppercases and trims an optional ticker.
func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func validatePositionFactor(pf float64) error {
	if pf < -1.0 || pf > 1.0 {
		return ErrInvalidPositionFactor
	}
	return nil
}

// CreateCompany inserts a new company after validating its fields,
// the industry reference, and name uniqueness within the industry.
func (u *companyUsecase) CreateCompany(ctx context.Context, name, ticker string, industryID uuid.UUID, positionFactor float64) (*entity.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := validatePositionFactor(positionFactor); err != nil {
		return nil, err
	}

	ok, err := u.industries.Exists(ctx, industryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIndustryNotFound
	}

	dup, err := u.companies.CheckDuplicate(ctx, name, industryID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateCompany
	}

	company := &entity.Company{
		ID:             uuid.New(),
		Name:           name,
		Ticker:         normalizeTicker(ticker),
		IndustryID:     industryID,
		PositionFactor: positionFactor,
	}
	if err := u.companies.Insert(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany returns one active company by id.
func (u *companyUsecase) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	return u.companies.FindByID(ctx, id)
}

// ListCompanies returns a page of active companies, optionally
// filtered by industry.
func (u *companyUsecase) ListCompanies(ctx context.Context, page, pageSize int, industryID *uuid.UUID) ([]entity.Company, int64, error) {
	q := repository.Query{Page: page, PageSize: pageSize}
	if industryID != nil {
		q.Filters = map[string]any{"industry_id": *industryID}
	}
	return u.companies.FindByQuery(ctx, q)
}

// UpdateCompany applies a partial update. Changing name or industry
// re-runs the duplicate check with the company itself excluded.
func (u *companyUsecase) UpdateCompany(ctx context.Context, id uuid.UUID, patch CompanyUpdate) (*entity.Company, error) {
	company, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		company.Name = name
	}
	if patch.Ticker != nil {
		company.Ticker = normalizeTicker(*patch.Ticker)
	}
	if patch.IndustryID != nil {
		ok, err := u.industries.Exists(ctx, *patch.IndustryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrIndustryNotFound
		}
		company.IndustryID = *patch.IndustryID
	}
	if patch.PositionFactor != nil {
		if err := validatePositionFactor(*patch.PositionFactor); err != nil {
			return nil, err
		}
		company.PositionFactor = *patch.PositionFactor
	}

	if patch.Name != nil || patch.IndustryID != nil {
		dup, err := u.companies.CheckDuplicate(ctx, company.Name, company.IndustryID, company.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, ErrDuplicateCompany
		}
	}

	if err := u.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany soft-deletes a company.
func (u *companyUsecase) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return u.companies.Delete(ctx, id)
}
