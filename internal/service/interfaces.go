package service

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/models"
)

// DocumentService serves the document API of the server.
type DocumentService interface {
	SetDocuments(ctx context.Context, collection string, docs ...models.Document) error
	GetDocument(ctx context.Context, collection, id string) (models.Document, error)
	GetDocuments(ctx context.Context, collection string) ([]models.Document, error)
	GetChangedDocuments(ctx context.Context, query models.ChangesQuery) ([]models.Document, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SyncService builds push plans. It has no dependencies and no side effects.
type SyncService interface {
	// BuildPushPlan groups pending records by the remote write they produce.
	// Synced records are ignored.
	BuildPushPlan(ctx context.Context, records []models.Record) (models.PushPlan, error)
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// logging or validating.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService // returns a decorated DocumentService applying additional behavior
}
