package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
)

// DocumentValidationService rejects malformed input with
// ErrInvalidDataProvided before it reaches the wrapped service.
type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewSyncValidator(),
	}
}

func (v *DocumentValidationService) SetDocuments(ctx context.Context, collection string, docs ...models.Document) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	req := models.SetDocumentsRequest{Documents: docs, Length: len(docs)}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SetDocuments(ctx, collection, docs...)
}

func (v *DocumentValidationService) GetDocument(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validateCollection(collection); err != nil {
		return models.Document{}, err
	}
	if !validators.IsValidDocumentID(id) {
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidDocumentID)
	}

	return v.inner.GetDocument(ctx, collection, id)
}

func (v *DocumentValidationService) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	return v.inner.GetDocuments(ctx, collection)
}

func (v *DocumentValidationService) GetChangedDocuments(ctx context.Context, query models.ChangesQuery) ([]models.Document, error) {
	if err := v.validator.Validate(ctx, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GetChangedDocuments(ctx, query)
}

func (v *DocumentValidationService) Wrap(wrapped DocumentService) DocumentService {
	v.inner = wrapped
	return v
}

func validateCollection(collection string) error {
	if !validators.IsValidCollectionName(collection) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDataProvided, validators.ErrInvalidCollectionName, collection)
	}
	return nil
}
