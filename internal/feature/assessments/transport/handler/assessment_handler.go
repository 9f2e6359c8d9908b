// Package handler provides HTTP handlers for the assessments feature.
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
	"orgair_backend/internal/feature/assessments/domain"
	"orgair_backend/internal/feature/assessments/domain/entity"
	"orgair_backend/internal/feature/assessments/transport/http/dto"
	"orgair_backend/internal/platform/repository"
)

// AssessmentUsecase defines the assessment operations the handler
// depends on.
type AssessmentUsecase interface {
	CreateAssessment(ctx context.Context, companyID uuid.UUID, typ entity.AssessmentType) (*entity.Assessment, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*entity.Assessment, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]entity.Assessment, int64, error)
	AddDimensionScore(ctx context.Context, assessmentID uuid.UUID, dim entity.Dimension, score, confidence float64, weight *float64) (*entity.Assessment, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, next entity.Status) (*entity.Assessment, error)
}

// AssessmentHandler handles HTTP requests for assessment operations.
type AssessmentHandler struct {
	uc AssessmentUsecase
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(uc AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

// respondAssessmentError maps domain errors onto HTTP statuses.
// Validation failures are 400; lifecycle violations, lock conflicts
// and lost promotion races are 409.
func respondAssessmentError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var terr *domain.TransitionError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Error()})
	case errors.As(err, &terr):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: terr.Error()})
	case errors.Is(err, domain.ErrAssessmentLocked),
		errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
	default:
		slog.Error("assessment operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Create handles POST /api/companies/:id/assessments.
func (h *AssessmentHandler) Create(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	var req dto.CreateAssessmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	a, err := h.uc.CreateAssessment(c.Request.Context(), companyID, entity.AssessmentType(req.Type))
	if err != nil {
		respondAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromAssessment(a))
}

// Get handles GET /api/assessments/:id.
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid assessment id"})
		return
	}
	a, err := h.uc.GetAssessment(c.Request.Context(), id)
	if err != nil {
		respondAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAssessment(a))
}

// ListByCompany handles GET /api/companies/:id/assessments.
func (h *AssessmentHandler) ListByCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	assessments, total, err := h.uc.ListByCompany(c.Request.Context(), companyID, page, pageSize)
	if err != nil {
		respondAssessmentError(c, err)
		return
	}

	items := make([]dto.AssessmentRes, 0, len(assessments))
	for i := range assessments {
		items = append(items, dto.FromAssessment(&assessments[i]))
	}
	c.JSON(http.StatusOK, api.Page[dto.AssessmentRes]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// AddScore handles POST /api/assessments/:id/scores.
func (h *AssessmentHandler) AddScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid assessment id"})
		return
	}
	var req dto.ScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	a, err := h.uc.AddDimensionScore(c.Request.Context(), id,
		entity.Dimension(req.Dimension), req.Score, req.Confidence, req.Weight)
	if err != nil {
		respondAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAssessment(a))
}

// Transition handles POST /api/assessments/:id/status.
func (h *AssessmentHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid assessment id"})
		return
	}
	var req dto.StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	a, err := h.uc.TransitionStatus(c.Request.Context(), id, entity.Status(req.Status))
	if err != nil {
		respondAssessmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAssessment(a))
}
