// Package handler provides HTTP handlers for the industries feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orgair_backend/internal/api"
	"orgair_backend/internal/feature/industries/domain/entity"
	"orgair_backend/internal/feature/industries/transport/http/dto"
	"orgair_backend/internal/platform/repository"
)

// IndustryUsecase defines the industry reads the handler depends on.
type IndustryUsecase interface {
	ListIndustries(ctx context.Context) ([]entity.Industry, error)
	GetIndustry(ctx context.Context, id uuid.UUID) (*entity.Industry, error)
	GetWeights(ctx context.Context, industryID uuid.UUID) (map[string]float64, error)
}

// IndustryHandler handles HTTP requests for industry reference data.
type IndustryHandler struct {
	uc IndustryUsecase
}

// NewIndustryHandler creates a new IndustryHandler.
func NewIndustryHandler(uc IndustryUsecase) *IndustryHandler {
	return &IndustryHandler{uc: uc}
}

// List handles GET /api/industries.
func (h *IndustryHandler) List(c *gin.Context) {
	industries, err := h.uc.ListIndustries(c.Request.Context())
	if err != nil {
		slog.Error("industry list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	out := make([]dto.IndustryRes, 0, len(industries))
	for _, ind := range industries {
		out = append(out, dto.IndustryRes{ID: ind.ID, Name: ind.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/industries/:id.
func (h *IndustryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid industry id"})
		return
	}
	ind, err := h.uc.GetIndustry(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "industry not found"})
			return
		}
		slog.Error("industry get failed", "error", err, "industry_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.IndustryRes{ID: ind.ID, Name: ind.Name})
}

// GetWeights handles GET /api/industries/:id/weights.
func (h *IndustryHandler) GetWeights(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid industry id"})
		return
	}
	weights, err := h.uc.GetWeights(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "industry not found"})
			return
		}
		slog.Error("industry weights failed", "error", err, "industry_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.WeightsRes{IndustryID: id, Weights: weights})
}
