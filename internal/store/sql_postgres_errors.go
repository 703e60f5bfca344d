package store

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells a sync run whether a failed document store call
// is worth another attempt.
type ErrorClassification int

const (
	// NonRetryable is the classification of anything not known to be
	// transient: bad data, constraint and schema errors, unknown errors.
	NonRetryable ErrorClassification = iota

	// Retryable marks lost connections, rolled back transactions and servers
	// that are starting up or shutting down.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx
// driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	switch {
	case err == nil:
		return NonRetryable
	case errors.Is(err, driver.ErrBadConn), pgconn.SafeToRetry(err):
		return Retryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// ClassifyPgError classifies a server reported error by SQLSTATE. Class 08
// (connection exception) and class 40 (transaction rollback, which covers
// serialization failures of concurrent merge-upserts and deadlocks) are
// retryable, as are the class 53 and 57 codes of an overloaded or restarting
// server.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	code := pgErr.Code

	if pgerrcode.IsConnectionException(code) || pgerrcode.IsTransactionRollback(code) {
		return Retryable
	}

	switch code {
	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.TooManyConnections:
		return Retryable
	}

	return NonRetryable
}
