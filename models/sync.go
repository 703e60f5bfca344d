package models

import (
	"sort"
	"time"
)

// SyncDirection selects which way a collection is synchronized.
type SyncDirection string

const (
	// DirectionPush only writes local changes to the remote store.
	DirectionPush SyncDirection = "push"
	// DirectionPull only applies remote changes to the local database.
	DirectionPull SyncDirection = "pull"
	// DirectionBoth pulls remote changes, then pushes local ones.
	DirectionBoth SyncDirection = "both"
)

// Pushes reports whether local changes are written in this direction.
// An empty direction means push.
func (d SyncDirection) Pushes() bool {
	return d == "" || d == DirectionPush || d == DirectionBoth
}

// Pulls reports whether remote changes are applied in this direction.
func (d SyncDirection) Pulls() bool {
	return d == DirectionPull || d == DirectionBoth
}

// SyncState maps a collection name to its synchronization state. Entries are
// mutated in place by every sync call, so the same map must be passed to
// consecutive calls.
type SyncState map[string]*CollectionState

// Collections returns the collection names in a stable order.
func (s SyncState) Collections() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CollectionState is the per-collection part of a SyncState.
//
// The configuration fields are set by the caller; the bookkeeping fields are
// owned by the sync engine.
type CollectionState struct {
	// FieldMap renames local fields when they are written remotely
	// (local name -> remote name). Unlisted fields keep their names.
	FieldMap map[string]string `json:"field_map,omitempty"`

	// ExcludedFields are never written remotely nor read back.
	ExcludedFields []string `json:"excluded_fields,omitempty"`

	// Direction defaults to push.
	Direction SyncDirection `json:"direction,omitempty"`

	// SessionID identifies the writer in remote documents. It is generated
	// on the first sync and kept afterwards.
	SessionID string `json:"session_id,omitempty"`

	// LastPulledSeq is the pull cursor: the highest store sequence applied
	// locally.
	LastPulledSeq int64 `json:"last_pulled_seq"`

	// LastPulledAt is the clock reading of the last successful pull.
	LastPulledAt time.Time `json:"last_pulled_at"`

	// LastPushedAt is the clock reading of the last successful push.
	LastPushedAt time.Time `json:"last_pushed_at"`

	// Pushed and Pulled count documents handled since the state was created.
	Pushed int64 `json:"pushed"`
	Pulled int64 `json:"pulled"`
}

// PushPlan groups the pending local records of one collection by the kind of
// remote write they produce.
type PushPlan struct {
	Create []Record
	Update []Record
	Delete []Record
}

// Len returns the number of records in the plan.
func (p PushPlan) Len() int {
	return len(p.Create) + len(p.Update) + len(p.Delete)
}

// All returns every record of the plan: creates, then updates, then deletes.
func (p PushPlan) All() []Record {
	all := make([]Record, 0, p.Len())
	all = append(all, p.Create...)
	all = append(all, p.Update...)
	all = append(all, p.Delete...)
	return all
}

// CollectionReport summarizes what a sync call did for one collection.
type CollectionReport struct {
	Collection string `json:"collection"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Deleted    int    `json:"deleted"`
	Pulled     int    `json:"pulled"`
	Skipped    int    `json:"skipped"`
}

// SyncReport is the outcome of a sync call.
type SyncReport struct {
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Collections []CollectionReport `json:"collections"`
}

// Pushed returns the total number of documents written remotely.
func (r SyncReport) Pushed() int {
	total := 0
	for _, c := range r.Collections {
		total += c.Created + c.Updated + c.Deleted
	}
	return total
}

// Pulled returns the total number of remote documents applied locally.
func (r SyncReport) Pulled() int {
	total := 0
	for _, c := range r.Collections {
		total += c.Pulled
	}
	return total
}
