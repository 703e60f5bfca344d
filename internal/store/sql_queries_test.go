package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-melon-sync/migrations"
	"github.com/MKhiriev/go-melon-sync/models"
)

func TestBuildGetDocumentQuery_Placeholders(t *testing.T) {
	query, args, err := buildGetDocumentQuery(statementBuilder(migrations.DialectPostgres), "todos", "a")
	require.NoError(t, err)
	assert.Equal(t, "SELECT collection, id, data, is_deleted, session_id, updated_at, seq FROM documents WHERE collection = $1 AND id = $2", query)
	assert.Equal(t, []any{"todos", "a"}, args)

	query, _, err = buildGetDocumentQuery(statementBuilder(migrations.DialectSQLite), "todos", "a")
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE collection = ? AND id = ?")
}

func TestBuildGetChangedDocumentsQuery(t *testing.T) {
	b := statementBuilder(migrations.DialectPostgres)
	cursor := time.Unix(0, 1000)

	tests := []struct {
		name     string
		query    models.ChangesQuery
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:     "collection only",
			query:    models.ChangesQuery{Collection: "todos"},
			contains: []string{"WHERE collection = $1", "ORDER BY seq, id"},
			absent:   []string{"seq >", "updated_at >", "session_id <>"},
			args:     []any{"todos"},
		},
		{
			name:     "cursor",
			query:    models.ChangesQuery{Collection: "todos", UpdatedAfter: cursor},
			contains: []string{"updated_at > $2"},
			absent:   []string{"session_id <>"},
			args:     []any{"todos", int64(1000)},
		},
		{
			name:     "sequence and session",
			query:    models.ChangesQuery{Collection: "todos", AfterSeq: 41, ExcludeSessionID: "me"},
			contains: []string{"seq > $2", "session_id <> $3"},
			absent:   []string{"updated_at >"},
			args:     []any{"todos", int64(41), "me"},
		},
		{
			name:     "cursor and session",
			query:    models.ChangesQuery{Collection: "todos", UpdatedAfter: cursor, ExcludeSessionID: "me"},
			contains: []string{"updated_at > $2", "session_id <> $3"},
			args:     []any{"todos", int64(1000), "me"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildGetChangedDocumentsQuery(b, tt.query)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, query, s)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestBuildUpsertDocumentQuery(t *testing.T) {
	doc := models.Document{ID: "a", Collection: "todos", IsDeleted: true, SessionID: "s", UpdatedAt: time.Unix(0, 7), Seq: 3}

	query, args, err := buildUpsertDocumentQuery(statementBuilder(migrations.DialectPostgres), doc, `{"text":"x"}`)
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO documents")
	assert.Contains(t, query, "ON CONFLICT (collection, id) DO UPDATE SET")
	assert.Contains(t, query, "seq = excluded.seq")
	assert.Contains(t, query, "$7")
	assert.Equal(t, []any{"todos", "a", `{"text":"x"}`, true, "s", int64(7), int64(3)}, args)
}

func TestBuildNextSequenceQuery(t *testing.T) {
	query, args, err := buildNextSequenceQuery(statementBuilder(migrations.DialectPostgres))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE document_sequence SET value = value + 1 WHERE id = $1 RETURNING value", query)
	assert.Equal(t, []any{1}, args)
}
