package store

import "errors"

// Sentinel errors returned by the local database and the document store.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrUnknownCollection is returned for a collection name the local
	// database was not opened with.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrRecordNotFound is returned when a local record does not exist or was
	// soft-deleted.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordDeleted is returned when updating a soft-deleted record.
	ErrRecordDeleted = errors.New("record is deleted")

	// ErrDocumentNotFound is returned when a remote document does not exist.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrDocumentNotSaved is returned when an upsert affected no rows.
	ErrDocumentNotSaved = errors.New("document was not saved")

	// ErrNilDatabase is returned when a store is built without a connection.
	ErrNilDatabase = errors.New("database connection is nil")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingFields is returned when record or document fields cannot be
	// converted to or from JSON.
	ErrEncodingFields = errors.New("failed to encode fields")
)
