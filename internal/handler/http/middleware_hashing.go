package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-melon-sync/internal/app"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/models"
)

// documentsHashing verifies the HMAC of a document upload. The digest covers
// the JSON encoding of the documents list. Without a hash key every upload
// passes through.
func (h *Handler) documentsHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.Debug().Str("func", "*Handler.documentsHashing").Msg("checking hash begins")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.documentsHashing").Msg("failed to read request body")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req models.SetDocumentsRequest
		if err := json.Unmarshal(body, &req); err != nil {
			log.Err(err).Str("func", "*Handler.documentsHashing").Msg(ErrInvalidJSON.Error())
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		payload, err := json.Marshal(req.Documents)
		if err != nil {
			log.Err(err).Str("func", "*Handler.documentsHashing").Msg("failed to marshal documents")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if !h.hasher.Verify(payload, req.Hash) {
			log.Error().Str("func", "*Handler.documentsHashing").
				Str("hash from request", req.Hash).
				Str("hashed body", h.hasher.HashHex(payload)).
				Msg(ErrHashMismatch.Error())
			utils.WriteError(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		log.Debug().Str("func", "*Handler.documentsHashing").
			Str("hash from request", req.Hash).
			Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
