// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecordStatus tracks whether a local record still has changes that were
// not pushed to the remote store.
type RecordStatus string

const (
	// StatusCreated marks a record created locally and never pushed.
	StatusCreated RecordStatus = "created"
	// StatusUpdated marks a previously synced record modified locally.
	StatusUpdated RecordStatus = "updated"
	// StatusDeleted marks a soft-deleted record whose deletion is not pushed yet.
	StatusDeleted RecordStatus = "deleted"
	// StatusSynced marks a record identical to its remote mirror.
	StatusSynced RecordStatus = "synced"
)

// IsPending reports whether the status carries unpushed local changes.
func (s RecordStatus) IsPending() bool {
	return s == StatusCreated || s == StatusUpdated || s == StatusDeleted
}

// Fields is the free-form payload of a record or a document.
type Fields map[string]any

// Clone returns a shallow copy of f. A nil map is returned as an empty one.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record is a single row of the local offline-first database.
type Record struct {
	// ID is the stable identifier shared with the remote document.
	ID string `json:"id"`

	// Collection is the name of the collection the record belongs to.
	Collection string `json:"collection"`

	// Fields holds the user data of the record.
	Fields Fields `json:"fields"`

	// Status is the local change-tracking status.
	Status RecordStatus `json:"status"`

	// Changed lists the field names modified since the last push.
	Changed []string `json:"changed,omitempty"`

	// Version is bumped on every local mutation. Push uses it to detect
	// records modified while their previous state was being written remotely.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDeleted reports whether the record was soft-deleted locally.
func (r Record) IsDeleted() bool {
	return r.Status == StatusDeleted
}
