package service

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/models"
)

type documentService struct {
	documents store.DocumentStore

	logger *logger.Logger
}

func NewDocumentService(documents store.DocumentStore, logger *logger.Logger) DocumentService {
	return &documentService{
		documents: documents,
		logger:    logger,
	}
}

func (d *documentService) SetDocuments(ctx context.Context, collection string, docs ...models.Document) error {
	return d.documents.SetDocuments(ctx, collection, docs...)
}

func (d *documentService) GetDocument(ctx context.Context, collection, id string) (models.Document, error) {
	return d.documents.GetDocument(ctx, collection, id)
}

func (d *documentService) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	return d.documents.GetDocuments(ctx, collection)
}

func (d *documentService) GetChangedDocuments(ctx context.Context, query models.ChangesQuery) ([]models.Document, error) {
	return d.documents.GetChangedDocuments(ctx, query)
}
