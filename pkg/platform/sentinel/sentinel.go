// Package sentinel holds infrastructure sentinel errors. Stores return these
// (optionally wrapped) so services can translate them into coded domain
// errors without knowing which backend produced them.
//
// These represent factual states about resources, not validation failures:
// validation failures belong to pkg/domain-errors (or, for SIN structure,
// the sentinels in pkg/sin).
package sentinel

import "errors"

var (
	// ErrUnavailable marks a backend that cannot be reached right now.
	ErrUnavailable = errors.New("unavailable")
)
