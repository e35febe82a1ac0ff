// internal/audit/postgres.go
package audit

import (
	"context"
	"database/sql"

	apperrors "faxgen/internal/common/errors"
)

const insertEntrySQL = `
	INSERT INTO fax_documents (reference_id, fax_type, pages, bytes, user_id, message_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PostgresRecorder writes audit entries to the fax_documents table, which
// also backs the reference ID uniqueness constraint used by support lookups.
type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (r *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	_, err := r.db.ExecContext(ctx, insertEntrySQL,
		entry.ReferenceID,
		entry.FaxType,
		entry.Pages,
		entry.Bytes,
		nullable(entry.UserID),
		nullable(entry.MessageID),
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAuditWriteFailedError(err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
