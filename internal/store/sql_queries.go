package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-melon-sync/migrations"
	"github.com/MKhiriev/go-melon-sync/models"
)

const (
	documentsTable = "documents"
	sequenceTable  = "document_sequence"
)

var documentColumns = []string{"collection", "id", "data", "is_deleted", "session_id", "updated_at", "seq"}

const upsertDocumentSuffix = `ON CONFLICT (collection, id) DO UPDATE SET ` +
	`data = excluded.data, ` +
	`is_deleted = excluded.is_deleted, ` +
	`session_id = excluded.session_id, ` +
	`updated_at = excluded.updated_at, ` +
	`seq = excluded.seq`

// statementBuilder returns a squirrel builder using the placeholders of the
// dialect.
func statementBuilder(dialect string) sq.StatementBuilderType {
	if dialect == migrations.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func buildGetDocumentQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildGetDocumentsQuery(b sq.StatementBuilderType, collection string) (string, []any, error) {
	return b.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
}

// buildGetChangedDocumentsQuery selects documents written strictly after the
// cursors. Zero cursors select everything; an empty session id excludes
// nothing.
func buildGetChangedDocumentsQuery(b sq.StatementBuilderType, query models.ChangesQuery) (string, []any, error) {
	builder := b.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"collection": query.Collection})

	if query.AfterSeq > 0 {
		builder = builder.Where(sq.Gt{"seq": query.AfterSeq})
	}
	if !query.UpdatedAfter.IsZero() {
		builder = builder.Where(sq.Gt{"updated_at": query.UpdatedAfter.UnixNano()})
	}
	if query.ExcludeSessionID != "" {
		builder = builder.Where(sq.NotEq{"session_id": query.ExcludeSessionID})
	}

	return builder.OrderBy("seq", "id").ToSql()
}

// buildNextSequenceQuery bumps the write sequence. The row lock it takes is
// held until commit, so writers commit in sequence order.
func buildNextSequenceQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Update(sequenceTable).
		Set("value", sq.Expr("value + 1")).
		Where(sq.Eq{"id": 1}).
		Suffix("RETURNING value").
		ToSql()
}

func buildGetDocumentDataQuery(b sq.StatementBuilderType, collection, id string) (string, []any, error) {
	return b.Select("data", "is_deleted", "session_id", "updated_at").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildUpsertDocumentQuery(b sq.StatementBuilderType, doc models.Document, data string) (string, []any, error) {
	return b.Insert(documentsTable).
		Columns(documentColumns...).
		Values(doc.Collection, doc.ID, data, doc.IsDeleted, doc.SessionID, doc.UpdatedAt.UnixNano(), doc.Seq).
		Suffix(upsertDocumentSuffix).
		ToSql()
}
