package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/models"
)

func TestClientRecordService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	local := newLocal(t)
	svc := NewClientRecordService(local, logger.Nop())

	record, err := svc.Create(ctx, "todos", models.Fields{"text": "todo 1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, record.Status)

	got, err := svc.Get(ctx, "todos", record.ID)
	require.NoError(t, err)
	assert.Equal(t, "todo 1", got.Fields["text"])

	updated, err := svc.Update(ctx, "todos", record.ID, models.Fields{"text": "todo 2"})
	require.NoError(t, err)
	assert.Equal(t, "todo 2", updated.Fields["text"])

	list, err := svc.List(ctx, "todos")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "todos", record.ID))

	list, err = svc.List(ctx, "todos")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Update(ctx, "todos", record.ID, models.Fields{"text": "again"})
	assert.ErrorIs(t, err, store.ErrRecordDeleted)
}

func TestClientRecordService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewClientRecordService(newLocal(t), logger.Nop())

	_, err := svc.Create(ctx, "notes", models.Fields{"text": "x"})
	assert.ErrorIs(t, err, store.ErrUnknownCollection)

	_, err = svc.Create(ctx, "todos", models.Fields{models.FieldIsDeleted: true})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Create(ctx, "todos", models.Fields{"": 1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Update(ctx, "todos", "missing", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Get(ctx, "todos", "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	err = svc.Delete(ctx, "todos", "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}
