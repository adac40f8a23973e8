package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"singate/internal/validation/models"
	"singate/pkg/platform/sentinel"
)

// PostgresStore persists validation records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed validation record store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the validations table when it does not exist yet.
// Called once at startup; safe to call repeatedly.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS validations (
			id            UUID PRIMARY KEY,
			request_id    TEXT NOT NULL,
			sin_masked    TEXT NOT NULL,
			sin_digest    TEXT NOT NULL,
			outcome       TEXT NOT NULL,
			valid         BOOLEAN NOT NULL,
			jurisdictions TEXT[] NOT NULL DEFAULT '{}',
			client_ip     TEXT NOT NULL DEFAULT '',
			device        TEXT NOT NULL DEFAULT '',
			checked_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS validations_checked_at_idx ON validations (checked_at DESC);
		CREATE INDEX IF NOT EXISTS validations_sin_digest_idx ON validations (sin_digest);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure validations schema: %w", err)
	}
	return nil
}

// Append inserts one validation record.
func (s *PostgresStore) Append(ctx context.Context, record models.ValidationRecord) error {
	query := `
		INSERT INTO validations (
			id, request_id, sin_masked, sin_digest, outcome, valid,
			jurisdictions, client_ip, device, checked_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.RequestID,
		record.SINMasked,
		record.SINDigest,
		record.Outcome,
		record.Valid,
		pq.Array(record.Jurisdictions),
		record.ClientIP,
		record.Device,
		record.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert validation record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.ValidationRecord, error) {
	query := `
		SELECT id, request_id, sin_masked, sin_digest, outcome, valid,
		       jurisdictions, client_ip, device, checked_at
		FROM validations
		ORDER BY checked_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query validation records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByDigest returns up to limit records sharing a digest, newest first.
func (s *PostgresStore) ListByDigest(ctx context.Context, digest string, limit int) ([]models.ValidationRecord, error) {
	query := `
		SELECT id, request_id, sin_masked, sin_digest, outcome, valid,
		       jurisdictions, client_ip, device, checked_at
		FROM validations
		WHERE sin_digest = $1
		ORDER BY checked_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, digest, limit)
	if err != nil {
		return nil, fmt.Errorf("query validation records by digest: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: postgres: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// scanRecords scans multiple rows into a record slice.
func scanRecords(rows *sql.Rows) ([]models.ValidationRecord, error) {
	var records []models.ValidationRecord

	for rows.Next() {
		var record models.ValidationRecord
		err := rows.Scan(
			&record.ID,
			&record.RequestID,
			&record.SINMasked,
			&record.SINDigest,
			&record.Outcome,
			&record.Valid,
			pq.Array(&record.Jurisdictions),
			&record.ClientIP,
			&record.Device,
			&record.CheckedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan validation record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validation records: %w", err)
	}
	return records, nil
}
