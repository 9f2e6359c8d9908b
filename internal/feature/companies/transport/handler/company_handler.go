// Package handler provides HTTP handlers for the companies feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orgair_backend/internal/api"
	"orgair_backend/internal/feature/companies/domain/entity"
	"orgair_backend/internal/feature/companies/transport/http/dto"
	"orgair_backend/internal/feature/companies/usecase"
	"orgair_backend/internal/platform/repository"
)

// CompanyUsecase defines the company operations the handler depends on.
type CompanyUsecase interface {
	CreateCompany(ctx context.Context, name, ticker string, industryID uuid.UUID, positionFactor float64) (*entity.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	ListCompanies(ctx context.Context, page, pageSize int, industryID *uuid.UUID) ([]entity.Company, int64, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, patch usecase.CompanyUpdate) (*entity.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

// CompanyHandler handles HTTP requests for company operations.
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func toCompanyRes(c *entity.Company) dto.CompanyRes {
	return dto.CompanyRes{
		ID:             c.ID,
		Name:           c.Name,
		Ticker:         c.Ticker,
		IndustryID:     c.IndustryID,
		PositionFactor: c.PositionFactor,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// respondCompanyError maps domain errors onto HTTP statuses.
func respondCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyName),
		errors.Is(err, usecase.ErrInvalidPositionFactor),
		errors.Is(err, usecase.ErrIndustryNotFound):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrDuplicateCompany):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
	default:
		slog.Error("company operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Create handles POST /api/companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.uc.CreateCompany(c.Request.Context(), req.Name, req.Ticker, req.IndustryID, req.PositionFactor)
	if err != nil {
		respondCompanyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCompanyRes(company))
}

// Get handles GET /api/companies/:id.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	company, err := h.uc.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondCompanyError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyRes(company))
}

// List handles GET /api/companies?page=&page_size=&industry_id=.
func (h *CompanyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var industryID *uuid.UUID
	if raw := c.Query("industry_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid industry id"})
			return
		}
		industryID = &id
	}

	companies, total, err := h.uc.ListCompanies(c.Request.Context(), page, pageSize, industryID)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	items := make([]dto.CompanyRes, 0, len(companies))
	for i := range companies {
		items = append(items, toCompanyRes(&companies[i]))
	}
	c.JSON(http.StatusOK, api.Page[dto.CompanyRes]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Update handles PUT /api/companies/:id. Omitted fields stay as they
// are.
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	var req dto.UpdateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.uc.UpdateCompany(c.Request.Context(), id, usecase.CompanyUpdate{
		Name:           req.Name,
		Ticker:         req.Ticker,
		IndustryID:     req.IndustryID,
		PositionFactor: req.PositionFactor,
	})
	if err != nil {
		respondCompanyError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyRes(company))
}

// Delete handles DELETE /api/companies/:id. The company is retired,
// not erased; its assessments stay readable.
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	if err := h.uc.DeleteCompany(c.Request.Context(), id); err != nil {
		respondCompanyError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
