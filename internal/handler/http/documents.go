// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/app"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/go-chi/chi/v5"
)

// setDocuments merge-upserts the documents of the request body into the
// collection named in the path. The documents' collection field is taken
// from the path.
func (h *Handler) setDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	var req models.SetDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setDocuments").Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if req.Length != len(req.Documents) {
		log.Error().Str("func", "*Handler.setDocuments").
			Int("length", req.Length).
			Int("documents", len(req.Documents)).
			Msg(validators.ErrLengthMismatch.Error())
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	for i := range req.Documents {
		req.Documents[i].Collection = collection
	}

	if err := h.services.DocumentService.SetDocuments(r.Context(), collection, req.Documents...); err != nil {
		log.Err(err).Str("func", "*Handler.setDocuments").Str("collection", collection).Msg("error saving documents")
		writeServiceError(w, err)
		return
	}

	log.Debug().Str("collection", collection).Int("documents", len(req.Documents)).Msg("documents saved")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	doc, err := h.services.DocumentService.GetDocument(r.Context(), collection, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").
			Str("collection", collection).
			Str("id", id).
			Msg("error getting document")
		writeServiceError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, doc, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").Msg("error writing response")
	}
}

func (h *Handler) getDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	docs, err := h.services.DocumentService.GetDocuments(r.Context(), collection)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDocuments").Str("collection", collection).Msg("error getting documents")
		writeServiceError(w, err)
		return
	}

	h.writeDocuments(w, r, docs)
}

// getChangedDocuments answers the documents of a collection written after
// the cursor of the request body, leaving out the documents of the excluded
// session. A zero cursor selects every document.
func (h *Handler) getChangedDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, "collection")

	var req models.ChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.getChangedDocuments").Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	query := models.ChangesQuery{
		Collection:       collection,
		AfterSeq:         req.AfterSeq,
		ExcludeSessionID: req.ExcludeSessionID,
	}
	if req.UpdatedAfter != 0 {
		query.UpdatedAfter = time.Unix(0, req.UpdatedAfter).UTC()
	}

	docs, err := h.services.DocumentService.GetChangedDocuments(r.Context(), query)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChangedDocuments").Str("collection", collection).Msg("error getting changed documents")
		writeServiceError(w, err)
		return
	}

	h.writeDocuments(w, r, docs)
}

func (h *Handler) writeDocuments(w http.ResponseWriter, r *http.Request, docs []models.Document) {
	if docs == nil {
		docs = []models.Document{}
	}

	resp := models.DocumentsResponse{Documents: docs, Length: len(docs)}
	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeDocuments").Msg("error writing response")
	}
}
