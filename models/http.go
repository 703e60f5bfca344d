// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SetDocumentsRequest is sent to write documents into a remote collection.
type SetDocumentsRequest struct {
	// Documents are merged into existing documents with the same id.
	Documents []Document `json:"documents"`

	// Length is the number of entries in Documents.
	Length int `json:"length"`

	// Hash is the hex HMAC-SHA256 of the JSON encoded Documents. It is
	// checked by the server when a hash key is configured.
	Hash string `json:"hash,omitempty"`
}

// ChangesRequest asks the server for documents written after a cursor.
type ChangesRequest struct {
	AfterSeq         int64  `json:"after_seq,omitempty"`
	UpdatedAfter     int64  `json:"updated_after"`
	ExcludeSessionID string `json:"exclude_session_id,omitempty"`
}

// DocumentsResponse carries documents returned by the server.
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
	Length    int        `json:"length"`
}
