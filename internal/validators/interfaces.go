// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync state and document payloads before they
// reach the local database or a document store.
//
// The same rules run on both sides of a sync: the client validates the sync
// state before a run, the document server validates every request. Names of
// collections and ids of documents are checked by the exported helpers so
// that configuration parsing can share them.
package validators

import "context"

// Validator validates a value. Field names, when given, restrict the check
// to those parts of the value; see the Field* constants.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
