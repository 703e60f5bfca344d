package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("version is not specified")

	// ErrMalformedSyncState is returned before any remote call when the sync
	// state cannot be used.
	ErrMalformedSyncState = errors.New("malformed sync state")

	// ErrSyncInProgress is returned when a sync call overlaps another one on
	// the same service.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrRemoteUnavailable wraps remote failures that were still transient
	// after every retry.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrIntegrityCheckFailed is returned when the server rejects the hash of
	// a document write.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
