package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/models"
)

const (
	versionPath   = "/api/version/"
	documentsPath = "/api/collections/{collection}/documents"
	documentPath  = "/api/collections/{collection}/documents/{id}"
	changesPath   = "/api/collections/{collection}/changes"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the request timeout. When appCfg.HashKey is set every document
// write carries an HMAC-SHA256 of its documents.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	if appCfg.HashKey != "" {
		a.hasher = utils.NewHasher(appCfg.HashKey)
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetDocuments implements [store.DocumentStore] with
// PUT /api/collections/{collection}/documents.
func (h *httpServerAdapter) SetDocuments(ctx context.Context, collection string, docs ...models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	req := models.SetDocumentsRequest{
		Documents: docs,
		Length:    len(docs),
	}
	if h.hasher != nil {
		payload, err := json.Marshal(docs)
		if err != nil {
			return fmt.Errorf("encode documents: %w", err)
		}
		req.Hash = h.hasher.HashHex(payload)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		SetBody(req).
		Put(documentsPath)
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpServerAdapter.SetDocuments").
			Str("collection", collection).
			Msg("request failed")
		return fmt.Errorf("%w: set documents: %w", ErrRequestFailed, err)
	}

	return mapHTTPError(resp)
}

// GetDocument implements [store.DocumentStore] with
// GET /api/collections/{collection}/documents/{id}. A 404 is reported as
// [store.ErrDocumentNotFound].
func (h *httpServerAdapter) GetDocument(ctx context.Context, collection, id string) (models.Document, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection, "id": id}).
		Get(documentPath)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: get document: %w", ErrRequestFailed, err)
	}
	if err := mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Document{}, fmt.Errorf("%w: %w", store.ErrDocumentNotFound, err)
		}
		return models.Document{}, err
	}

	var doc models.Document
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}

	return doc, nil
}

// GetDocuments implements [store.DocumentStore] with
// GET /api/collections/{collection}/documents.
func (h *httpServerAdapter) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection).
		Get(documentsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: get documents: %w", ErrRequestFailed, err)
	}

	return decodeDocuments(resp.Body(), mapHTTPError(resp))
}

// GetChangedDocuments implements [store.DocumentStore] with
// POST /api/collections/{collection}/changes.
func (h *httpServerAdapter) GetChangedDocuments(ctx context.Context, query models.ChangesQuery) ([]models.Document, error) {
	req := models.ChangesRequest{AfterSeq: query.AfterSeq, ExcludeSessionID: query.ExcludeSessionID}
	if !query.UpdatedAfter.IsZero() {
		req.UpdatedAfter = query.UpdatedAfter.UnixNano()
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("collection", query.Collection).
		SetBody(req).
		Post(changesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: get changed documents: %w", ErrRequestFailed, err)
	}

	return decodeDocuments(resp.Body(), mapHTTPError(resp))
}

// GetServerVersion implements [ServerAdapter].
func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("%w: get version: %w", ErrRequestFailed, err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func decodeDocuments(body []byte, httpErr error) ([]models.Document, error) {
	if httpErr != nil {
		return nil, httpErr
	}

	var docs models.DocumentsResponse
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	if docs.Documents == nil {
		return []models.Document{}, nil
	}

	return docs.Documents, nil
}
