// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors. They are logged by the handlers and answered with 400 Bad
// Request.
var (
	// ErrInvalidJSON is returned when a request body is not valid JSON for
	// the endpoint it was sent to.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrHashMismatch is returned when the integrity hash of a document
	// upload is missing or does not match its documents.
	ErrHashMismatch = errors.New("hash of documents does not match")
)
