// Package models holds the validation feature's storage and transport
// agnostic types.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome labels for validation records and metrics. These mirror the parse
// error taxonomy in pkg/sin plus the success case.
const (
	OutcomeValid           = "valid"
	OutcomeTooShort        = "too_short"
	OutcomeTooLong         = "too_long"
	OutcomeInvalidChecksum = "invalid_checksum"
)

// ValidationRecord is the persisted trace of one validation request. It
// never contains the full SIN: only the masked rendering and a keyed digest
// for correlating repeat lookups.
type ValidationRecord struct {
	ID            uuid.UUID
	RequestID     string
	SINMasked     string
	SINDigest     string
	Outcome       string
	Valid         bool
	Jurisdictions []string
	ClientIP      string
	Device        string
	CheckedAt     time.Time
}
