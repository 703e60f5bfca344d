package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
)

// syncService is the concrete implementation of SyncService.
type syncService struct{}

// NewSyncService constructs a SyncService ready for use.
func NewSyncService() SyncService {
	return &syncService{}
}

// BuildPushPlan implements SyncService.
//
// A record created and deleted before it was ever pushed still lands in
// Delete: the remote store gets a soft-deleted document for it, so every
// local record seen by a sync has a remote mirror.
func (s *syncService) BuildPushPlan(ctx context.Context, records []models.Record) (models.PushPlan, error) {
	var plan models.PushPlan

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return models.PushPlan{}, err
		}
		if record.ID == "" {
			return models.PushPlan{}, fmt.Errorf("%w: record without id in %s", ErrInvalidDataProvided, record.Collection)
		}

		switch record.Status {
		case models.StatusCreated:
			plan.Create = append(plan.Create, record)
		case models.StatusUpdated:
			plan.Update = append(plan.Update, record)
		case models.StatusDeleted:
			plan.Delete = append(plan.Delete, record)
		case models.StatusSynced:
		default:
			return models.PushPlan{}, fmt.Errorf("%w: record %s has unknown status %q", ErrInvalidDataProvided, record.ID, record.Status)
		}
	}

	return plan, nil
}

// toDocument builds the remote mirror of a pending record.
func toDocument(record models.Record, cs *models.CollectionState, updatedAt time.Time) models.Document {
	return models.Document{
		ID:         record.ID,
		Collection: record.Collection,
		Data:       toRemoteFields(record.Fields, cs),
		IsDeleted:  record.IsDeleted(),
		SessionID:  cs.SessionID,
		UpdatedAt:  updatedAt,
	}
}

// toRecord builds the local record of a pulled document. Deleted documents
// become deleted records, which the local database destroys.
func toRecord(doc models.Document, collection string, cs *models.CollectionState) models.Record {
	status := models.StatusSynced
	if doc.IsDeleted {
		status = models.StatusDeleted
	}

	return models.Record{
		ID:         doc.ID,
		Collection: collection,
		Fields:     toLocalFields(doc.Data, cs),
		Status:     status,
		UpdatedAt:  doc.UpdatedAt,
	}
}

// toRemoteFields renames fields with the collection field map and drops
// excluded and bookkeeping fields. A renamed field wins over a local field
// that already carries the remote name.
func toRemoteFields(fields models.Fields, cs *models.CollectionState) models.Fields {
	excluded := fieldSet(cs.ExcludedFields)
	out := make(models.Fields, len(fields))

	for name, value := range fields {
		if _, renamed := cs.FieldMap[name]; renamed || excluded[name] || isBookkeepingField(name) {
			continue
		}
		out[name] = value
	}
	for local, remote := range cs.FieldMap {
		if value, ok := fields[local]; ok && !excluded[local] {
			out[remote] = value
		}
	}

	return out
}

// toLocalFields is the inverse of toRemoteFields.
func toLocalFields(data models.Fields, cs *models.CollectionState) models.Fields {
	excluded := fieldSet(cs.ExcludedFields)
	reverse := make(map[string]string, len(cs.FieldMap))
	for local, remote := range cs.FieldMap {
		reverse[remote] = local
	}

	out := make(models.Fields, len(data))
	for name, value := range data {
		if _, renamed := reverse[name]; renamed || excluded[name] || isBookkeepingField(name) {
			continue
		}
		if _, mapped := cs.FieldMap[name]; mapped {
			// the remote copy of this local name lives under its mapped name
			continue
		}
		out[name] = value
	}
	for remote, local := range reverse {
		if value, ok := data[remote]; ok && !excluded[local] {
			out[local] = value
		}
	}

	return out
}

func fieldSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func isBookkeepingField(name string) bool {
	return name == models.FieldIsDeleted || name == models.FieldUpdatedAt || name == models.FieldSessionID
}
