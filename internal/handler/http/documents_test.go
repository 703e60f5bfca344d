// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/mock"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockDocuments = mock.MockDocumentStore

func busyError() error {
	return sqlite3.Error{Code: sqlite3.ErrBusy}
}

func sampleDocument() models.Document {
	return models.Document{
		ID:        "0191f5a4-7c1e-7000-8000-000000000001",
		Data:      models.Fields{"text": "todo 1"},
		SessionID: "session-a",
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
	}
}

func stringsReader(s string) io.Reader {
	if s == "" {
		return nil
	}
	return strings.NewReader(s)
}

// setBody encodes an upload request. With a non-empty key the hash field is
// filled the way the HTTP adapter does it.
func setBody(t *testing.T, hashKey string, docs ...models.Document) string {
	t.Helper()

	req := models.SetDocumentsRequest{Documents: docs, Length: len(docs)}
	if hashKey != "" {
		payload, err := json.Marshal(docs)
		require.NoError(t, err)
		req.Hash = utils.NewHasher(hashKey).HashHex(payload)
	}

	body, err := json.Marshal(req)
	require.NoError(t, err)
	return string(body)
}

func TestSetDocuments(t *testing.T) {
	doc := sampleDocument()

	tests := []struct {
		name       string
		body       string
		setup      func(m *mockDocuments)
		wantStatus int
		wantError  string
	}{
		{
			name: "saved",
			body: setBody(t, "", doc),
			setup: func(m *mockDocuments) {
				want := doc
				want.Collection = "todos"
				m.EXPECT().SetDocuments(gomock.Any(), "todos", want).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "invalid json",
			body:       `{"documents":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid data provided",
		},
		{
			name:       "length mismatch",
			body:       `{"documents":[{"id":"1","data":{}}],"length":2}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid data provided",
		},
		{
			name: "no documents",
			body: `{"documents":[],"length":0}`,
			setup: func(m *mockDocuments) {
				m.EXPECT().SetDocuments(gomock.Any(), "todos").
					Return(fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyDocuments))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "no documents provided",
		},
		{
			name: "storage busy",
			body: setBody(t, "", doc),
			setup: func(m *mockDocuments) {
				m.EXPECT().SetDocuments(gomock.Any(), "todos", gomock.Any()).
					Return(fmt.Errorf("%w: %w", store.ErrExecutingStatement, busyError()))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "storage temporarily unavailable",
		},
		{
			name: "storage failure",
			body: setBody(t, "", doc),
			setup: func(m *mockDocuments) {
				m.EXPECT().SetDocuments(gomock.Any(), "todos", gomock.Any()).
					Return(fmt.Errorf("%w: %w", store.ErrCommitingTransaction, errors.New("disk full")))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, documents := newTestRouter(t, "")
			if tt.setup != nil {
				tt.setup(documents)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/collections/todos/documents", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantError), rr.Body.String())
			}
		})
	}
}

func TestGetDocument(t *testing.T) {
	doc := sampleDocument()
	doc.Collection = "todos"

	t.Run("found", func(t *testing.T) {
		router, documents := newTestRouter(t, "")
		documents.EXPECT().GetDocument(gomock.Any(), "todos", doc.ID).Return(doc, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections/todos/documents/"+doc.ID, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.Document
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, doc, got)
	})

	t.Run("not found", func(t *testing.T) {
		router, documents := newTestRouter(t, "")
		documents.EXPECT().GetDocument(gomock.Any(), "todos", "missing").
			Return(models.Document{}, fmt.Errorf("%w: todos/missing", store.ErrDocumentNotFound))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections/todos/documents/missing", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"document not found"}`, rr.Body.String())
	})

	t.Run("invalid collection", func(t *testing.T) {
		router, documents := newTestRouter(t, "")
		documents.EXPECT().GetDocument(gomock.Any(), "1bad", "x").
			Return(models.Document{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidCollectionName))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections/1bad/documents/x", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"invalid collection name"}`, rr.Body.String())
	})
}

func TestGetDocuments(t *testing.T) {
	router, documents := newTestRouter(t, "")
	documents.EXPECT().GetDocuments(gomock.Any(), "todos").Return([]models.Document{sampleDocument(), sampleDocument()}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections/todos/documents", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.DocumentsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Length)
	assert.Len(t, resp.Documents, 2)
}

func TestGetDocuments_EmptyCollectionIsList(t *testing.T) {
	router, documents := newTestRouter(t, "")
	documents.EXPECT().GetDocuments(gomock.Any(), "users").Return(nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections/users/documents", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"documents":[],"length":0}`, rr.Body.String())
}

func TestGetChangedDocuments(t *testing.T) {
	cursor := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)

	tests := []struct {
		name      string
		body      string
		wantQuery models.ChangesQuery
	}{
		{
			name: "cursor and excluded session",
			body: fmt.Sprintf(`{"updated_after":%d,"exclude_session_id":"session-a"}`, cursor.UnixNano()),
			wantQuery: models.ChangesQuery{
				Collection:       "todos",
				UpdatedAfter:     cursor,
				ExcludeSessionID: "session-a",
			},
		},
		{
			name: "sequence cursor",
			body: `{"after_seq":17,"exclude_session_id":"session-a"}`,
			wantQuery: models.ChangesQuery{
				Collection:       "todos",
				AfterSeq:         17,
				ExcludeSessionID: "session-a",
			},
		},
		{
			name:      "zero cursor selects everything",
			body:      `{}`,
			wantQuery: models.ChangesQuery{Collection: "todos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, documents := newTestRouter(t, "")
			documents.EXPECT().GetChangedDocuments(gomock.Any(), tt.wantQuery).Return([]models.Document{sampleDocument()}, nil)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/collections/todos/changes", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusOK, rr.Code)
			var resp models.DocumentsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, 1, resp.Length)
		})
	}
}

func TestGetChangedDocuments_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/collections/todos/changes", strings.NewReader(`[`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
