package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/mock"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testHashKey = "test-hash-key"

// stubAppInfoService implements service.AppInfoService.
type stubAppInfoService struct {
	version string
}

func (s *stubAppInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}

// newTestRouter wires a Handler over a mocked document service and returns
// its router.
func newTestRouter(t *testing.T, hashKey string) (http.Handler, *mock.MockDocumentStore) {
	t.Helper()

	documents := mock.NewMockDocumentStore(gomock.NewController(t))
	h := NewHandler(&service.Services{
		DocumentService: documents,
		AppInfoService:  &stubAppInfoService{version: "1.0.0"},
	}, hashKey, logger.Nop())

	return h.Init(), documents
}

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}

	plain := NewHandler(svc, "", logger.Nop())
	require.NotNil(t, plain)
	assert.Same(t, svc, plain.services)
	assert.Nil(t, plain.hasher)

	keyed := NewHandler(svc, testHashKey, logger.Nop())
	assert.NotNil(t, keyed.hasher)
}

func TestInit_Routes(t *testing.T) {
	router, documents := newTestRouter(t, "")
	documents.EXPECT().GetDocuments(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	documents.EXPECT().GetDocument(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleDocument(), nil).AnyTimes()
	documents.EXPECT().GetChangedDocuments(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	documents.EXPECT().SetDocuments(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/version/", "", http.StatusOK},
		{http.MethodGet, "/api/collections/todos/documents", "", http.StatusOK},
		{http.MethodGet, "/api/collections/todos/documents/1", "", http.StatusOK},
		{http.MethodPut, "/api/collections/todos/documents", setBody(t, "", sampleDocument()), http.StatusNoContent},
		{http.MethodPost, "/api/collections/todos/changes", `{}`, http.StatusOK},
		{http.MethodDelete, "/api/collections/todos/documents/1", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/user/login", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, stringsReader(tt.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
		})
	}
}

func TestInit_CompressesResponses(t *testing.T) {
	router, documents := newTestRouter(t, "")
	documents.EXPECT().GetDocuments(gomock.Any(), "todos").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/todos/documents", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestInit_RecoversFromPanic(t *testing.T) {
	router, documents := newTestRouter(t, "")
	documents.EXPECT().GetDocuments(gomock.Any(), "todos").DoAndReturn(
		func(context.Context, string) ([]models.Document, error) { panic("boom") },
	)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/todos/documents", nil)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() { router.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
