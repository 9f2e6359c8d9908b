// Package usecase implements the business logic for the documents feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"orgair_backend/internal/feature/documents/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// ErrEmptyFilename is returned when an upload carries no filename.
var ErrEmptyFilename = errors.New("document filename must not be empty")

// ErrCompanyNotFound is returned when the referenced company does not
// exist or is deleted.
var ErrCompanyNotFound = errors.New("company not found")

// DocumentRepository abstracts the document metadata store gateway.
type DocumentRepository interface {
	repository.Repository[entity.Document]
}

// BlobStore abstracts object storage: opaque blob put/get keyed by a
// caller-supplied path.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CompanyDirectory answers existence checks for company references.
type CompanyDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// documentUsecase implements document upload and retrieval.
type documentUsecase struct {
	documents DocumentRepository
	blobs     BlobStore
	companies CompanyDirectory
}

// NewDocumentUsecase creates a new documentUsecase.
func NewDocumentUsecase(documents DocumentRepository, blobs BlobStore, companies CompanyDirectory) *documentUsecase {
	return &documentUsecase{documents: documents, blobs: blobs, companies: companies}
}

// Upload stores the blob in object storage and records its metadata.
// If the metadata insert fails after the blob landed, the blob is
// removed best effort so storage does not accumulate orphans.
func (u *documentUsecase) Upload(ctx context.Context, companyID uuid.UUID, filename, contentType string, size int64, body io.Reader) (*entity.Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ok, err := u.companies.Exists(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCompanyNotFound
	}

	doc := &entity.Document{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   size,
	}
	doc.StorageKey = fmt.Sprintf("companies/%s/%s/%s", companyID, doc.ID, filename)

	if err := u.blobs.Put(ctx, doc.StorageKey, contentType, body); err != nil {
		return nil, err
	}

	if err := u.documents.Insert(ctx, doc); err != nil {
		if delErr := u.blobs.Delete(ctx, doc.StorageKey); delErr != nil {
			slog.Warn("failed to clean up orphaned blob", "key", doc.StorageKey, "error", delErr)
		}
		return nil, err
	}

	return doc, nil
}

// Get returns one document's metadata.
func (u *documentUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return u.documents.FindByID(ctx, id)
}

// ListByCompany returns a page of a company's documents.
func (u *documentUsecase) ListByCompany(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]entity.Document, int64, error) {
	return u.documents.FindByQuery(ctx, repository.Query{
		Filters:  map[string]any{"company_id": companyID},
		Page:     page,
		PageSize: pageSize,
	})
}

// DownloadURL returns a time-limited URL for the document blob.
func (u *documentUsecase) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := u.documents.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.blobs.PresignGet(ctx, doc.StorageKey)
}
