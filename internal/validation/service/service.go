// Package service holds the validation feature's business logic: parse and
// classify a candidate SIN, persist a privacy-safe record of the check, and
// emit an audit event. Transport concerns stay in the handler layer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"singate/internal/audit"
	"singate/internal/validation/metrics"
	"singate/internal/validation/models"
	"singate/internal/validation/store"
	"singate/pkg/platform/privacy"
	"singate/pkg/requestcontext"
	"singate/pkg/sin"
)

var tracer = otel.Tracer("singate/internal/validation/service")

// Result is the outcome of one validation request. A parse failure is a
// normal result, not an error: the caller asked whether the input is a valid
// SIN and the answer is no.
type Result struct {
	Valid         bool
	Outcome       string
	Formatted     string
	Jurisdictions []sin.Jurisdiction
}

// Service validates and classifies SINs and records each check.
type Service struct {
	store      store.Store
	auditInbox chan<- audit.Event
	metrics    *metrics.Metrics
	logger     *slog.Logger
	digestKey  []byte
}

func NewService(st store.Store, auditInbox chan<- audit.Event, m *metrics.Metrics, logger *slog.Logger, digestKey []byte) *Service {
	return &Service{
		store:      st,
		auditInbox: auditInbox,
		metrics:    m,
		logger:     logger,
		digestKey:  digestKey,
	}
}

// Validate parses raw input, verifies the checksum and classifies the
// issuing jurisdiction. Every call is recorded and audited regardless of
// outcome; record and audit failures are logged and counted but never fail
// the request itself.
func (s *Service) Validate(ctx context.Context, raw string) (Result, error) {
	ctx, span := tracer.Start(ctx, "validation.Validate")
	defer span.End()

	start := time.Now()

	result := Result{Outcome: models.OutcomeValid, Valid: true}
	parsed, err := sin.Parse(raw)
	switch {
	case err == nil:
		result.Formatted = parsed.Formatted()
		result.Jurisdictions = parsed.Jurisdictions()
	case errors.Is(err, sin.ErrTooShort):
		result = Result{Outcome: models.OutcomeTooShort}
	case errors.Is(err, sin.ErrTooLong):
		result = Result{Outcome: models.OutcomeTooLong}
	case errors.Is(err, sin.ErrInvalidChecksum):
		result = Result{Outcome: models.OutcomeInvalidChecksum}
	default:
		return Result{}, err
	}
	span.SetAttributes(attribute.String("validation.outcome", result.Outcome))

	record := s.buildRecord(ctx, parsed, result, err == nil)
	if storeErr := s.store.Append(ctx, record); storeErr != nil {
		if s.metrics != nil {
			s.metrics.RecordWriteErrors.Inc()
		}
		s.logger.Error("validation record write failed",
			"error", storeErr,
			"request_id", record.RequestID)
	}

	s.emitAudit(ctx, record)

	if s.metrics != nil {
		s.metrics.IncrementValidations(result.Outcome)
		s.metrics.ObserveDuration(time.Since(start).Seconds())
	}
	return result, nil
}

// ListRecent returns the newest validation records for the admin surface.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]models.ValidationRecord, error) {
	ctx, span := tracer.Start(ctx, "validation.ListRecent")
	defer span.End()

	return s.store.ListRecent(ctx, limit)
}

// ListByDigest returns the records sharing one SIN digest, newest first, so
// an operator can correlate repeated checks of the same number without ever
// seeing the number itself.
func (s *Service) ListByDigest(ctx context.Context, digest string, limit int) ([]models.ValidationRecord, error) {
	ctx, span := tracer.Start(ctx, "validation.ListByDigest")
	defer span.End()

	return s.store.ListByDigest(ctx, digest, limit)
}

func (s *Service) buildRecord(ctx context.Context, parsed sin.SIN, result Result, parsedOK bool) models.ValidationRecord {
	record := models.ValidationRecord{
		ID:        uuid.New(),
		RequestID: requestcontext.RequestID(ctx),
		Outcome:   result.Outcome,
		Valid:     result.Valid,
		ClientIP:  privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
		Device:    requestcontext.DeviceSummary(ctx),
		CheckedAt: requestcontext.Now(ctx).UTC(),
	}
	if !parsedOK {
		return record
	}

	record.SINMasked = privacy.MaskSIN(parsed)
	record.Jurisdictions = make([]string, len(result.Jurisdictions))
	for i, j := range result.Jurisdictions {
		record.Jurisdictions[i] = j.String()
	}
	digest, err := privacy.DigestSIN(parsed, s.digestKey)
	if err != nil {
		// Only reachable with a misconfigured key; the record still
		// stands without correlation.
		s.logger.Error("sin digest failed", "error", err)
		return record
	}
	record.SINDigest = digest
	return record
}

// emitAudit hands the event to the audit worker without blocking the request
// path. A full inbox drops the event and bumps a counter.
func (s *Service) emitAudit(ctx context.Context, record models.ValidationRecord) {
	if s.auditInbox == nil {
		return
	}
	event := audit.Event{
		Timestamp:     record.CheckedAt,
		Action:        audit.ActionSINValidated,
		Outcome:       record.Outcome,
		SINMasked:     record.SINMasked,
		Jurisdictions: record.Jurisdictions,
		RequestID:     record.RequestID,
		ClientIPHint:  record.ClientIP,
	}
	select {
	case s.auditInbox <- event:
	default:
		if s.metrics != nil {
			s.metrics.AuditEventsDropped.Inc()
		}
		s.logger.Warn("audit inbox full, event dropped",
			"request_id", record.RequestID)
	}
}
