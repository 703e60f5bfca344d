// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client transport to the document server.
//
// [ServerAdapter] implements [store.DocumentStore] over HTTP so that the sync
// engine can write to a remote document server the same way it writes to a
// SQL document store.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrServiceUnavailable] for 503, [ErrBadRequest] for 400).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/internal/store"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is a [store.DocumentStore] backed by the document server.
type ServerAdapter interface {
	store.DocumentStore

	// GetServerVersion returns the version string reported by the server.
	GetServerVersion(ctx context.Context) (string, error)
}
