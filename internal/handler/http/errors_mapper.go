package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-melon-sync/internal/app"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first matching target wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{validators.ErrInvalidCollectionName, errorResponse{http.StatusBadRequest, app.MsgInvalidCollection}},
	{validators.ErrInvalidDocumentID, errorResponse{http.StatusBadRequest, app.MsgInvalidDocumentID}},
	{validators.ErrEmptyDocuments, errorResponse{http.StatusBadRequest, app.MsgNoDocumentsProvided}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrVersionIsNotSpecified, errorResponse{http.StatusInternalServerError, app.MsgVersionIsNotSpecified}},
	{store.ErrDocumentNotFound, errorResponse{http.StatusNotFound, app.MsgDocumentNotFound}},
	{store.ErrDocumentNotSaved, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrEncodingFields, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},

	{store.ErrBuildingSQLQuery, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrExecutingQuery, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrBeginningTransaction, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrCommitingTransaction, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrExecutingStatement, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrScanningRow, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
	{store.ErrScanningRows, errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}},
}

// responseFromError picks the status and public message for err. Transient
// storage failures answer 503 so that clients retry them.
func responseFromError(err error) errorResponse {
	if store.IsRetryable(err) {
		return errorResponse{http.StatusServiceUnavailable, app.MsgStorageUnavailable}
	}
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func writeServiceError(w http.ResponseWriter, err error) {
	resp := responseFromError(err)
	utils.WriteError(w, resp.message, resp.status)
}
