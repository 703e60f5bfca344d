// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Names of the bookkeeping fields exposed in a document field map.
const (
	FieldIsDeleted = "isDeleted"
	FieldUpdatedAt = "updatedAt"
	FieldSessionID = "sessionId"
)

// Document is a remote mirror of a local record.
//
// Data carries the user fields after the collection field mapping. The
// bookkeeping values are kept apart so that stores can index and filter on
// them; Fields merges both views back into a single map.
type Document struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Data       Fields    `json:"data"`
	IsDeleted  bool      `json:"is_deleted"`
	SessionID  string    `json:"session_id"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Seq is assigned by the store on every write and grows in commit
	// order. Documents written in one batch share it.
	Seq int64 `json:"seq,omitempty"`
}

// Fields returns the document field map as seen by readers of the remote
// collection: user data plus updatedAt, sessionId and, for soft-deleted
// documents, isDeleted.
func (d Document) Fields() Fields {
	out := d.Data.Clone()
	out[FieldUpdatedAt] = d.UpdatedAt
	if d.SessionID != "" {
		out[FieldSessionID] = d.SessionID
	}
	if d.IsDeleted {
		out[FieldIsDeleted] = true
	}
	return out
}

// Get returns a single field from the document field map.
func (d Document) Get(field string) (any, bool) {
	v, ok := d.Fields()[field]
	return v, ok
}

// ChangesQuery selects documents of a collection written after a cursor.
type ChangesQuery struct {
	Collection string `json:"collection"`

	// AfterSeq is exclusive. Zero selects every document.
	AfterSeq int64 `json:"after_seq,omitempty"`

	// UpdatedAfter is exclusive. A zero value selects every document. It
	// filters on writer stamps and is not a safe pull cursor; use AfterSeq.
	UpdatedAfter time.Time `json:"updated_after"`

	// ExcludeSessionID skips documents written by that session.
	ExcludeSessionID string `json:"exclude_session_id,omitempty"`
}
