// Package store persists validation records. Two implementations exist: an
// in-memory ring for development and tests, and PostgreSQL for production.
// Unreachable backends surface as sentinel.ErrUnavailable so callers stay
// backend-agnostic.
package store

import (
	"context"

	"singate/internal/validation/models"
)

// Store is the validation record store.
type Store interface {
	// Append persists one record. Records are append-only.
	Append(ctx context.Context, record models.ValidationRecord) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.ValidationRecord, error)
	// ListByDigest returns up to limit records sharing a SIN digest,
	// newest first. Used to correlate repeat lookups of the same number.
	ListByDigest(ctx context.Context, digest string, limit int) ([]models.ValidationRecord, error)
	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error
}
