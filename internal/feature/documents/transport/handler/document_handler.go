// Package handler provides HTTP handlers for the documents feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orgair_backend/internal/api"
	"orgair_backend/internal/feature/documents/domain/entity"
	"orgair_backend/internal/feature/documents/transport/http/dto"
	"orgair_backend/internal/feature/documents/usecase"
	"orgair_backend/internal/platform/repository"
)

// maxUploadBytes caps a single document upload.
const maxUploadBytes = 50 << 20

// DocumentUsecase defines the document operations the handler depends on.
type DocumentUsecase interface {
	Upload(ctx context.Context, companyID uuid.UUID, filename, contentType string, size int64, body io.Reader) (*entity.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]entity.Document, int64, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

// DocumentHandler handles HTTP requests for document operations.
type DocumentHandler struct {
	uc DocumentUsecase
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(uc DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func toDocumentRes(d *entity.Document) dto.DocumentRes {
	return dto.DocumentRes{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyFilename):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
	default:
		slog.Error("document operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Upload handles POST /api/documents with a multipart body carrying a
// company_id field and a file part.
func (h *DocumentHandler) Upload(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file part missing"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unreadable file part"})
		return
	}
	defer f.Close()

	doc, err := h.uc.Upload(c.Request.Context(), companyID, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		respondDocumentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDocumentRes(doc))
}

// Get handles GET /api/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid document id"})
		return
	}
	doc, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		respondDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentRes(doc))
}

// List handles GET /api/documents?company_id=&page=&page_size=.
func (h *DocumentHandler) List(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	docs, total, err := h.uc.ListByCompany(c.Request.Context(), companyID, page, pageSize)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	items := make([]dto.DocumentRes, 0, len(docs))
	for i := range docs {
		items = append(items, toDocumentRes(&docs[i]))
	}
	c.JSON(http.StatusOK, api.Page[dto.DocumentRes]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Download handles GET /api/documents/:id/download and answers with a
// time-limited URL rather than streaming the blob through the API.
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid document id"})
		return
	}
	url, err := h.uc.DownloadURL(c.Request.Context(), id)
	if err != nil {
		respondDocumentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DownloadRes{URL: url})
}
