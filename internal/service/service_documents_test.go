// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/mock"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
)

func newValidatedDocumentService(t *testing.T) (DocumentService, *mock.MockDocumentStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentStore(ctrl)
	return NewDocumentValidationService().Wrap(NewDocumentService(documents, logger.Nop())), documents
}

func TestDocumentService_SetDocuments(t *testing.T) {
	svc, documents := newValidatedDocumentService(t)
	ctx := context.Background()
	doc := models.Document{ID: "1", Data: models.Fields{"text": "todo 1"}}

	documents.EXPECT().SetDocuments(ctx, "todos", doc).Return(nil)
	require.NoError(t, svc.SetDocuments(ctx, "todos", doc))
}

func TestDocumentService_SetDocuments_Invalid(t *testing.T) {
	svc, _ := newValidatedDocumentService(t)
	ctx := context.Background()

	err := svc.SetDocuments(ctx, "to-dos", models.Document{ID: "1"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidCollectionName)

	err = svc.SetDocuments(ctx, "todos")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyDocuments)

	err = svc.SetDocuments(ctx, "todos", models.Document{ID: "a/b"})
	assert.ErrorIs(t, err, validators.ErrInvalidDocumentID)
}

func TestDocumentService_GetDocument(t *testing.T) {
	svc, documents := newValidatedDocumentService(t)
	ctx := context.Background()

	documents.EXPECT().GetDocument(ctx, "todos", "missing").Return(models.Document{}, store.ErrDocumentNotFound)
	_, err := svc.GetDocument(ctx, "todos", "missing")
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)

	_, err = svc.GetDocument(ctx, "todos", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDocumentService_GetDocuments(t *testing.T) {
	svc, documents := newValidatedDocumentService(t)
	ctx := context.Background()

	documents.EXPECT().GetDocuments(ctx, "todos").Return([]models.Document{{ID: "1"}}, nil)
	docs, err := svc.GetDocuments(ctx, "todos")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = svc.GetDocuments(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDocumentService_GetChangedDocuments(t *testing.T) {
	svc, documents := newValidatedDocumentService(t)
	ctx := context.Background()
	query := models.ChangesQuery{Collection: "todos", UpdatedAfter: time.Unix(10, 0), ExcludeSessionID: "s1"}

	documents.EXPECT().GetChangedDocuments(ctx, query).Return(nil, nil)
	_, err := svc.GetChangedDocuments(ctx, query)
	require.NoError(t, err)

	_, err = svc.GetChangedDocuments(ctx, models.ChangesQuery{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNewServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentStore(ctrl)

	services, err := NewServices(documents, &config.ServerConfig{App: config.App{Version: "1.0.0"}}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, services.DocumentService)
	assert.Equal(t, "1.0.0", services.AppInfoService.GetAppVersion(context.Background()))

	_, err = NewServices(documents, &config.ServerConfig{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
