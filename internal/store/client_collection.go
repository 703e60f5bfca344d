package store

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/models"
)

// Collection is a handle on one collection of the local database.
type Collection struct {
	name string
	db   LocalDatabase
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Query returns the records that are not soft-deleted.
func (c *Collection) Query(ctx context.Context) ([]models.Record, error) {
	return c.db.Query(ctx, c.name)
}

// Find returns a single record that is not soft-deleted.
func (c *Collection) Find(ctx context.Context, id string) (models.Record, error) {
	return c.db.Find(ctx, c.name, id)
}

// Create adds a record in its own write action.
func (c *Collection) Create(ctx context.Context, fields models.Fields) (models.Record, error) {
	var record models.Record
	err := c.db.Write(ctx, func(w Writer) error {
		var err error
		record, err = w.Create(c.name, fields)
		return err
	})
	return record, err
}

// Update merges fields into a record in its own write action.
func (c *Collection) Update(ctx context.Context, id string, fields models.Fields) (models.Record, error) {
	var record models.Record
	err := c.db.Write(ctx, func(w Writer) error {
		var err error
		record, err = w.Update(c.name, id, fields)
		return err
	})
	return record, err
}

// MarkAsDeleted soft-deletes a record in its own write action.
func (c *Collection) MarkAsDeleted(ctx context.Context, id string) error {
	return c.db.Write(ctx, func(w Writer) error {
		return w.MarkAsDeleted(c.name, id)
	})
}
