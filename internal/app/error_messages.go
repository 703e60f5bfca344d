// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// document server handlers and the sync client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP error bodies. The client maps them back to service errors, so the
// wording must stay identical on both sides.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCollection is returned when the collection path parameter is
	// not a valid collection name.
	MsgInvalidCollection = "invalid collection name"

	// MsgInvalidDocumentID is returned when the id path parameter cannot key
	// a document.
	MsgInvalidDocumentID = "invalid document id"

	// MsgNoDocumentsProvided is returned when a write request carries an
	// empty documents list.
	MsgNoDocumentsProvided = "no documents provided"

	// MsgDocumentNotFound is returned when a read targets an unknown document.
	MsgDocumentNotFound = "document not found"

	// MsgHashMismatch is returned when the integrity hash of a write request
	// does not match its documents.
	MsgHashMismatch = "hash mismatch"

	// MsgStorageUnavailable is returned when the document storage failed with
	// a transient error. The client retries these.
	MsgStorageUnavailable = "storage temporarily unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgVersionIsNotSpecified is returned when the server was started
	// without an application version.
	MsgVersionIsNotSpecified = "version is not specified"
)
