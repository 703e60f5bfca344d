package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/models"
)

func newTestDocumentStore(t *testing.T) DocumentStore {
	t.Helper()
	return NewDocumentRepository(newSQLiteDB(t), logger.Nop())
}

func TestDocumentRepository_SetAndGet(t *testing.T) {
	ctx := testContext()
	docs := newTestDocumentStore(t)
	at := time.Unix(0, 1_700_000_000_000_000_000).UTC()

	err := docs.SetDocuments(ctx, "todos", models.Document{
		ID:        "a",
		Data:      models.Fields{"text": "todo 1", "done": false},
		SessionID: "s-1",
		UpdatedAt: at,
	})
	require.NoError(t, err)

	doc, err := docs.GetDocument(ctx, "todos", "a")
	require.NoError(t, err)
	assert.Equal(t, "todos", doc.Collection)
	assert.Equal(t, "todo 1", doc.Data["text"])
	assert.Equal(t, false, doc.Data["done"])
	assert.False(t, doc.IsDeleted)
	assert.Equal(t, "s-1", doc.SessionID)
	assert.True(t, at.Equal(doc.UpdatedAt))

	_, err = docs.GetDocument(ctx, "todos", "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = docs.GetDocument(ctx, "users", "a")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

// TestDocumentRepository_MergeUpsert verifies that a write keeps stored
// fields it does not carry and that a soft delete only flags the document.
func TestDocumentRepository_MergeUpsert(t *testing.T) {
	ctx := testContext()
	docs := newTestDocumentStore(t)

	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{"text": "todo 2", "done": false}},
	))
	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{"done": true}},
	))
	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{models.FieldIsDeleted: true}, IsDeleted: true},
	))
	// a later write without the flag does not revive the document
	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{"note": "x"}},
	))

	all, err := docs.GetDocuments(ctx, "todos")
	require.NoError(t, err)
	require.Len(t, all, 1)

	doc := all[0]
	assert.Equal(t, "todo 2", doc.Data["text"])
	assert.Equal(t, true, doc.Data["done"])
	assert.Equal(t, "x", doc.Data["note"])
	assert.True(t, doc.IsDeleted)
	assert.NotContains(t, doc.Data, models.FieldIsDeleted)

	isDeleted, ok := doc.Get(models.FieldIsDeleted)
	assert.True(t, ok)
	assert.Equal(t, true, isDeleted)
}

func TestDocumentRepository_GetChangedDocuments(t *testing.T) {
	ctx := testContext()
	docs := newTestDocumentStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "old", Data: models.Fields{"text": "old"}, SessionID: "other", UpdatedAt: base},
		models.Document{ID: "new", Data: models.Fields{"text": "new"}, SessionID: "other", UpdatedAt: base.Add(2 * time.Second)},
		models.Document{ID: "mine", Data: models.Fields{"text": "mine"}, SessionID: "me", UpdatedAt: base.Add(3 * time.Second)},
	))
	require.NoError(t, docs.SetDocuments(ctx, "users",
		models.Document{ID: "u", Data: models.Fields{"name": "someone"}, SessionID: "other", UpdatedAt: base.Add(4 * time.Second)},
	))

	all, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{Collection: "todos"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// one batch, one sequence: ordered by id
	assert.Equal(t, "mine", all[0].ID)
	assert.Equal(t, all[0].Seq, all[2].Seq)

	changed, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{
		Collection:       "todos",
		UpdatedAfter:     base,
		ExcludeSessionID: "me",
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "new", changed[0].ID)

	// all todos share the sequence of their batch
	afterBatch, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{Collection: "todos", AfterSeq: all[0].Seq})
	require.NoError(t, err)
	assert.Empty(t, afterBatch)
}

// TestDocumentRepository_SequenceFollowsCommitOrder writes a document whose
// writer stamp is older than one already stored. The sequence cursor still
// returns it, where an updated_at cursor would skip it.
func TestDocumentRepository_SequenceFollowsCommitOrder(t *testing.T) {
	ctx := testContext()
	docs := newTestDocumentStore(t)
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := early.Add(time.Minute)

	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "first", Data: models.Fields{"text": "first"}, SessionID: "a", UpdatedAt: later},
	))
	first, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{Collection: "todos"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	cursor := first[0].Seq
	assert.Positive(t, cursor)

	// committed after the first write, stamped before it
	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "late", Data: models.Fields{"text": "late"}, SessionID: "b", UpdatedAt: early},
	))

	byStamp, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{Collection: "todos", UpdatedAfter: later})
	require.NoError(t, err)
	assert.Empty(t, byStamp)

	bySeq, err := docs.GetChangedDocuments(ctx, models.ChangesQuery{Collection: "todos", AfterSeq: cursor})
	require.NoError(t, err)
	require.Len(t, bySeq, 1)
	assert.Equal(t, "late", bySeq[0].ID)
	assert.Greater(t, bySeq[0].Seq, cursor)
}

func TestDocumentRepository_UpdatedAtNeverGoesBackwards(t *testing.T) {
	ctx := testContext()
	docs := newTestDocumentStore(t)
	later := time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)

	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{"text": "x"}, UpdatedAt: later},
	))
	require.NoError(t, docs.SetDocuments(ctx, "todos",
		models.Document{ID: "a", Data: models.Fields{"text": "y"}, UpdatedAt: later.Add(-time.Minute)},
	))

	doc, err := docs.GetDocument(ctx, "todos", "a")
	require.NoError(t, err)
	assert.Equal(t, "y", doc.Data["text"])
	assert.True(t, later.Equal(doc.UpdatedAt))
}

func TestDocumentRepository_SetDocuments_Empty(t *testing.T) {
	db, mock := newPostgresMockDB(t)
	repo := NewDocumentRepository(db, logger.Nop())

	require.NoError(t, repo.SetDocuments(testContext(), "todos"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_SetDocuments_Postgres(t *testing.T) {
	db, mock := newPostgresMockDB(t)
	repo := NewDocumentRepository(db, logger.Nop())
	at := time.Unix(0, 42).UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE document_sequence SET value = value + 1 WHERE id = $1 RETURNING value`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(9)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data, is_deleted, session_id, updated_at FROM documents WHERE collection = $1 AND id = $2`)).
		WithArgs("users", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"data", "is_deleted", "session_id", "updated_at"}).
			AddRow(`{"name":"old","age":3}`, false, "s-0", int64(7)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents`)).
		WithArgs("users", "u1", `{"age":3,"name":"new"}`, false, "s-0", int64(42), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetDocuments(testContext(), "users", models.Document{
		ID:        "u1",
		Data:      models.Fields{"name": "new"},
		UpdatedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_SetDocuments_Errors(t *testing.T) {
	dbErr := errors.New("db down")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dbErr)
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "sequence fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`UPDATE document_sequence`).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "select fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`UPDATE document_sequence`).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
				mock.ExpectQuery(`SELECT data`).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name: "insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`UPDATE document_sequence`).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
				mock.ExpectQuery(`SELECT data`).WillReturnRows(sqlmock.NewRows([]string{"data", "is_deleted", "session_id", "updated_at"}))
				mock.ExpectExec(`INSERT INTO documents`).WillReturnError(dbErr)
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "no rows affected",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`UPDATE document_sequence`).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
				mock.ExpectQuery(`SELECT data`).WillReturnRows(sqlmock.NewRows([]string{"data", "is_deleted", "session_id", "updated_at"}))
				mock.ExpectExec(`INSERT INTO documents`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrDocumentNotSaved,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`UPDATE document_sequence`).WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
				mock.ExpectQuery(`SELECT data`).WillReturnRows(sqlmock.NewRows([]string{"data", "is_deleted", "session_id", "updated_at"}))
				mock.ExpectExec(`INSERT INTO documents`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(dbErr)
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPostgresMockDB(t)
			repo := NewDocumentRepository(db, logger.Nop())
			tt.setup(mock)

			err := repo.SetDocuments(testContext(), "todos", models.Document{ID: "a", Data: models.Fields{"text": "x"}})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentRepository_GetDocuments_Errors(t *testing.T) {
	db, mock := newPostgresMockDB(t)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM documents WHERE collection = $1 ORDER BY id`)).
		WithArgs("todos").
		WillReturnError(errors.New("boom"))
	_, err := repo.GetDocuments(testContext(), "todos")
	assert.ErrorIs(t, err, ErrExecutingQuery)

	mock.ExpectQuery(`FROM documents`).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("todos", "a", `not json`, false, "", int64(1), int64(1)))
	_, err = repo.GetDocuments(testContext(), "todos")
	assert.ErrorIs(t, err, ErrEncodingFields)

	mock.ExpectQuery(`FROM documents`).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("todos", "a", `{}`, false, "", int64(1), int64(1)).
			RowError(0, errors.New("iteration")))
	_, err = repo.GetDocuments(testContext(), "todos")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
