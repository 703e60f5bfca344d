package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/models"
)

// LocalOption configures a local database.
type LocalOption func(*localDatabase)

// WithClock sets the clock used for record timestamps.
func WithClock(now func() time.Time) LocalOption {
	return func(l *localDatabase) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator sets the generator of record ids.
func WithIDGenerator(gen utils.IDGenerator) LocalOption {
	return func(l *localDatabase) {
		if gen != nil {
			l.ids = gen
		}
	}
}

// localDatabase is the SQLite implementation of [LocalDatabase]. Records of
// every collection share the records table and are told apart by the
// collection column.
type localDatabase struct {
	*DB
	collections map[string]struct{}
	now         func() time.Time
	ids         utils.IDGenerator
	logger      *logger.Logger
}

// NewLocalDatabase returns a [LocalDatabase] over a migrated connection that
// knows the given collections.
func NewLocalDatabase(db *DB, log *logger.Logger, collections []string, opts ...LocalOption) LocalDatabase {
	l := &localDatabase{
		DB:          db,
		collections: make(map[string]struct{}, len(collections)),
		now:         time.Now,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
	}
	for _, name := range collections {
		l.collections[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *localDatabase) Collections() []string {
	names := make([]string, 0, len(l.collections))
	for name := range l.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *localDatabase) Collection(name string) (*Collection, error) {
	if err := l.checkCollection(name); err != nil {
		return nil, err
	}
	return &Collection{name: name, db: l}, nil
}

func (l *localDatabase) checkCollection(name string) error {
	if _, ok := l.collections[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return nil
}

// Write runs action in a transaction that is committed only when action
// returns nil.
func (l *localDatabase) Write(ctx context.Context, action func(w Writer) error) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localDatabase.Write").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := action(&txWriter{ctx: ctx, tx: tx, db: l}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "localDatabase.Write").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *localDatabase) Query(ctx context.Context, collection string) ([]models.Record, error) {
	if err := l.checkCollection(collection); err != nil {
		return nil, err
	}
	return l.selectRecords(ctx, "localDatabase.Query", getActiveRecords, collection)
}

func (l *localDatabase) Find(ctx context.Context, collection, id string) (models.Record, error) {
	if err := l.checkCollection(collection); err != nil {
		return models.Record{}, err
	}

	record, err := scanRecord(l.DB.QueryRowContext(ctx, getRecord, collection, id))
	if err != nil {
		return models.Record{}, err
	}
	if record.IsDeleted() {
		return models.Record{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, id)
	}

	return record, nil
}

func (l *localDatabase) PendingChanges(ctx context.Context, collection string) ([]models.Record, error) {
	if err := l.checkCollection(collection); err != nil {
		return nil, err
	}
	return l.selectRecords(ctx, "localDatabase.PendingChanges", getPendingRecords, collection)
}

func (l *localDatabase) MarkSynced(ctx context.Context, collection string, records ...models.Record) (int, error) {
	log := logger.FromContext(ctx)

	if err := l.checkCollection(collection); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localDatabase.MarkSynced").Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	settled := 0
	for _, record := range records {
		query := markRecordSynced
		if record.IsDeleted() {
			query = destroyPushedRecord
		}

		res, err := tx.ExecContext(ctx, query, collection, record.ID, record.Version)
		if err != nil {
			log.Err(err).
				Str("func", "localDatabase.MarkSynced").
				Str("collection", collection).
				Str("id", record.ID).
				Msg("failed to settle pushed record")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n == 0 {
			// changed locally while it was being pushed, stays pending
			log.Debug().
				Str("func", "localDatabase.MarkSynced").
				Str("collection", collection).
				Str("id", record.ID).
				Int64("pushed_version", record.Version).
				Msg("record changed during push")
			continue
		}
		settled++
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "localDatabase.MarkSynced").Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return settled, nil
}

func (l *localDatabase) ApplyRemoteChanges(ctx context.Context, collection string, records ...models.Record) (int, int, error) {
	log := logger.FromContext(ctx)

	if err := l.checkCollection(collection); err != nil {
		return 0, 0, err
	}
	if len(records) == 0 {
		return 0, 0, nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localDatabase.ApplyRemoteChanges").Msg("failed to begin transaction")
		return 0, 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	applied, skipped := 0, 0
	now := l.now().UTC()

	for _, record := range records {
		var status models.RecordStatus
		err := tx.QueryRowContext(ctx, getRecordStatus, collection, record.ID).Scan(&status)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		case status.IsPending():
			skipped++
			continue
		}

		if record.IsDeleted() {
			res, err := tx.ExecContext(ctx, destroyRecord, collection, record.ID)
			if err != nil {
				return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				applied++
			}
			continue
		}

		fields, err := encodeJSON(record.Fields)
		if err != nil {
			return 0, 0, err
		}
		createdAt := record.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := tx.ExecContext(ctx, upsertSyncedRecord,
			collection, record.ID, fields, createdAt.UnixNano(), now.UnixNano(),
		); err != nil {
			log.Err(err).
				Str("func", "localDatabase.ApplyRemoteChanges").
				Str("collection", collection).
				Str("id", record.ID).
				Msg("failed to upsert pulled record")
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "localDatabase.ApplyRemoteChanges").Msg("failed to commit transaction")
		return 0, 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return applied, skipped, nil
}

func (l *localDatabase) LoadSyncState(ctx context.Context) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getSyncStates)
	if err != nil {
		log.Err(err).Str("func", "localDatabase.LoadSyncState").Msg("failed to query sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	state := make(models.SyncState)
	for rows.Next() {
		var collection, raw string
		if err := rows.Scan(&collection, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var entry models.CollectionState
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("%w: sync state of %q: %w", ErrEncodingFields, collection, err)
		}
		state[collection] = &entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return state, nil
}

func (l *localDatabase) SaveSyncState(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, collection := range state.Collections() {
		entry := state[collection]
		if entry == nil {
			continue
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingFields, err)
		}
		if _, err := tx.ExecContext(ctx, upsertSyncState, collection, string(raw)); err != nil {
			log.Err(err).
				Str("func", "localDatabase.SaveSyncState").
				Str("collection", collection).
				Msg("failed to save sync state")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *localDatabase) selectRecords(ctx context.Context, fn, query, collection string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query, collection)
	if err != nil {
		log.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to scan record row")
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Str("collection", collection).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// txWriter is the [Writer] handed to Write actions.
type txWriter struct {
	ctx context.Context
	tx  *sql.Tx
	db  *localDatabase
}

func (w *txWriter) Create(collection string, fields models.Fields) (models.Record, error) {
	if err := w.db.checkCollection(collection); err != nil {
		return models.Record{}, err
	}

	now := w.db.now().UTC()
	record := models.Record{
		ID:         w.db.ids.Generate(),
		Collection: collection,
		Fields:     fields.Clone(),
		Status:     models.StatusCreated,
		Changed:    fieldNames(fields),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	encodedFields, err := encodeJSON(record.Fields)
	if err != nil {
		return models.Record{}, err
	}
	changed, err := encodeJSON(record.Changed)
	if err != nil {
		return models.Record{}, err
	}

	if _, err := w.tx.ExecContext(w.ctx, insertRecord,
		collection, record.ID, encodedFields, changed, now.UnixNano(), now.UnixNano(),
	); err != nil {
		logger.FromContext(w.ctx).Err(err).
			Str("func", "txWriter.Create").
			Str("collection", collection).
			Msg("failed to insert record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

func (w *txWriter) Update(collection, id string, fields models.Fields) (models.Record, error) {
	if err := w.db.checkCollection(collection); err != nil {
		return models.Record{}, err
	}

	record, err := scanRecord(w.tx.QueryRowContext(w.ctx, getRecord, collection, id))
	if err != nil {
		return models.Record{}, err
	}
	if record.IsDeleted() {
		return models.Record{}, fmt.Errorf("%w: %s/%s", ErrRecordDeleted, collection, id)
	}

	for k, v := range fields {
		record.Fields[k] = v
	}
	record.Changed = mergeFieldNames(record.Changed, fieldNames(fields))
	if record.Status == models.StatusSynced {
		record.Status = models.StatusUpdated
	}
	record.Version++
	record.UpdatedAt = w.db.now().UTC()

	encodedFields, err := encodeJSON(record.Fields)
	if err != nil {
		return models.Record{}, err
	}
	changed, err := encodeJSON(record.Changed)
	if err != nil {
		return models.Record{}, err
	}

	if _, err := w.tx.ExecContext(w.ctx, updateRecord,
		encodedFields, string(record.Status), changed, record.UpdatedAt.UnixNano(), collection, id,
	); err != nil {
		logger.FromContext(w.ctx).Err(err).
			Str("func", "txWriter.Update").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to update record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// MarkAsDeleted soft-deletes a record. Deleting a deleted record is a no-op.
func (w *txWriter) MarkAsDeleted(collection, id string) error {
	if err := w.db.checkCollection(collection); err != nil {
		return err
	}

	record, err := scanRecord(w.tx.QueryRowContext(w.ctx, getRecord, collection, id))
	if err != nil {
		return err
	}
	if record.IsDeleted() {
		return nil
	}

	if _, err := w.tx.ExecContext(w.ctx, markRecordDeleted, w.db.now().UTC().UnixNano(), collection, id); err != nil {
		logger.FromContext(w.ctx).Err(err).
			Str("func", "txWriter.MarkAsDeleted").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to mark record deleted")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		record               models.Record
		fields, changed      string
		createdAt, updatedAt int64
	)

	err := row.Scan(
		&record.Collection,
		&record.ID,
		&fields,
		&record.Status,
		&changed,
		&record.Version,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal([]byte(fields), &record.Fields); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	if record.Fields == nil {
		record.Fields = models.Fields{}
	}
	if err := json.Unmarshal([]byte(changed), &record.Changed); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	record.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return record, nil
}

func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	return string(raw), nil
}

func fieldNames(fields models.Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mergeFieldNames(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, name := range append(append([]string{}, a...), b...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
