package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/models"
)

// documentRepository is the SQL implementation of [DocumentStore]. It works
// on Postgres and SQLite; only the placeholder format differs.
//
// Documents of every collection share the documents table. User fields are
// stored as a JSON object in the data column, bookkeeping fields in their
// own columns.
type documentRepository struct {
	*DB
	builder sq.StatementBuilderType
	now     func() time.Time
	logger  *logger.Logger
}

// NewDocumentRepository constructs a [DocumentStore] over a migrated
// connection.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentStore {
	return &documentRepository{
		DB:      db,
		builder: statementBuilder(db.dialect),
		now:     time.Now,
		logger:  logger,
	}
}

// SetDocuments merge-upserts docs inside one transaction. Stored fields that
// a document does not carry are kept; isDeleted never goes back to false and
// updated_at never goes backwards. Every document of the batch gets the next
// store sequence, whatever Seq it carries.
func (r *documentRepository) SetDocuments(ctx context.Context, collection string, docs ...models.Document) error {
	log := logger.FromContext(ctx)

	if len(docs) == 0 {
		log.Warn().
			Str("func", "documentRepository.SetDocuments").
			Str("collection", collection).
			Msg("no documents provided")
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SetDocuments").
			Str("pg_code", postgresError(err)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	seq, err := r.nextSequence(ctx, tx)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SetDocuments").
			Str("collection", collection).
			Str("pg_code", postgresError(err)).
			Msg("failed to take write sequence")
		return err
	}

	for idx, doc := range docs {
		doc.Collection = collection
		doc.Seq = seq

		merged, err := r.mergeWithStored(ctx, tx, doc)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.SetDocuments").
				Str("collection", collection).
				Str("id", doc.ID).
				Int("idx", idx).
				Msg("failed to read stored document")
			return err
		}

		data, err := encodeJSON(merged.Data)
		if err != nil {
			return err
		}

		query, args, err := buildUpsertDocumentQuery(r.builder, merged, data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.SetDocuments").
				Str("collection", collection).
				Str("id", doc.ID).
				Str("pg_code", postgresError(err)).
				Msg("failed to upsert document")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s/%s", ErrDocumentNotSaved, collection, doc.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "documentRepository.SetDocuments").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "documentRepository.SetDocuments").
		Str("collection", collection).
		Int("count", len(docs)).
		Int64("seq", seq).
		Msg("documents saved")

	return nil
}

func (r *documentRepository) nextSequence(ctx context.Context, tx *sql.Tx) (int64, error) {
	query, args, err := buildNextSequenceQuery(r.builder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return seq, nil
}

func (r *documentRepository) mergeWithStored(ctx context.Context, tx *sql.Tx, doc models.Document) (models.Document, error) {
	query, args, err := buildGetDocumentDataQuery(r.builder, doc.Collection, doc.ID)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	merged := doc
	merged.Data = userFields(doc.Data)
	if merged.UpdatedAt.IsZero() {
		merged.UpdatedAt = r.now().UTC()
	}

	var (
		storedData      string
		storedDeleted   bool
		storedSessionID string
		storedUpdatedAt int64
	)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&storedData, &storedDeleted, &storedSessionID, &storedUpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return merged, nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	stored := models.Fields{}
	if err := json.Unmarshal([]byte(storedData), &stored); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	for k, v := range merged.Data {
		stored[k] = v
	}
	merged.Data = stored
	merged.IsDeleted = merged.IsDeleted || storedDeleted
	if merged.SessionID == "" {
		merged.SessionID = storedSessionID
	}
	if storedAt := time.Unix(0, storedUpdatedAt).UTC(); storedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = storedAt
	}

	return merged, nil
}

func (r *documentRepository) GetDocument(ctx context.Context, collection, id string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(r.builder, collection, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, ErrDocumentNotFound) {
		return models.Document{}, fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, collection, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to get document")
		return models.Document{}, err
	}

	return doc, nil
}

func (r *documentRepository) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	query, args, err := buildGetDocumentsQuery(r.builder, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectDocuments(ctx, "documentRepository.GetDocuments", query, args)
}

func (r *documentRepository) GetChangedDocuments(ctx context.Context, changes models.ChangesQuery) ([]models.Document, error) {
	query, args, err := buildGetChangedDocumentsQuery(r.builder, changes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.selectDocuments(ctx, "documentRepository.GetChangedDocuments", query, args)
}

func (r *documentRepository) selectDocuments(ctx context.Context, fn, query string, args []any) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("pg_code", postgresError(err)).
			Msg("failed to execute query for documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, 50)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan document row")
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		doc       models.Document
		data      string
		updatedAt int64
	)

	err := row.Scan(&doc.Collection, &doc.ID, &data, &doc.IsDeleted, &doc.SessionID, &updatedAt, &doc.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	doc.Data = models.Fields{}
	if err := json.Unmarshal([]byte(data), &doc.Data); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	doc.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return doc, nil
}

// userFields drops bookkeeping keys that have their own columns.
func userFields(data models.Fields) models.Fields {
	out := data.Clone()
	delete(out, models.FieldIsDeleted)
	delete(out, models.FieldUpdatedAt)
	delete(out, models.FieldSessionID)
	return out
}
