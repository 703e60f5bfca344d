package store

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// DocumentStore is a collection/document oriented remote store. Documents are
// keyed by id inside a named collection.
type DocumentStore interface {
	// SetDocuments merges every document into the stored document with the
	// same id, creating it when missing. Fields absent from a document keep
	// their stored value.
	SetDocuments(ctx context.Context, collection string, docs ...models.Document) error

	// GetDocument returns ErrDocumentNotFound when the id is unknown.
	GetDocument(ctx context.Context, collection, id string) (models.Document, error)

	// GetDocuments returns every document of the collection, soft-deleted
	// ones included.
	GetDocuments(ctx context.Context, collection string) ([]models.Document, error)

	// GetChangedDocuments returns documents written after the cursors of
	// query, ordered by the sequence the store assigned on write.
	GetChangedDocuments(ctx context.Context, query models.ChangesQuery) ([]models.Document, error)
}

// ErrorClassificator decides whether a failed database call may succeed
// when attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
