// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-melon-sync/internal/adapter"
	"github.com/MKhiriev/go-melon-sync/internal/app"
	"github.com/MKhiriev/go-melon-sync/internal/store"
)

// isRetryable reports whether a remote call failed transiently, whichever
// DocumentStore implementation produced the error.
func isRetryable(err error) bool {
	return adapter.IsRetryable(err) || store.IsRetryable(err)
}

// mapRemoteError translates a DocumentStore error into a service error. The
// original error stays in the chain.
func mapRemoteError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isRetryable(err):
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)

	case errors.Is(err, adapter.ErrBadRequest):
		if extractBody(err) == app.MsgHashMismatch {
			return fmt.Errorf("%w: %w", ErrIntegrityCheckFailed, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)

	case errors.Is(err, adapter.ErrInternalServerError):
		if extractBody(err) == app.MsgStorageUnavailable {
			return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
