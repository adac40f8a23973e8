// Package handler exposes the validation feature over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"singate/internal/platform/middleware"
	"singate/internal/validation/models"
	"singate/internal/validation/service"
	dErrors "singate/pkg/domain-errors"
	"singate/pkg/platform/httputil"
	"singate/pkg/requestcontext"
)

// Service defines the validation operations the handler needs.
type Service interface {
	Validate(ctx context.Context, raw string) (service.Result, error)
	ListRecent(ctx context.Context, limit int) ([]models.ValidationRecord, error)
	ListByDigest(ctx context.Context, digest string, limit int) ([]models.ValidationRecord, error)
}

// Handler handles the validation endpoints.
type Handler struct {
	logger       *slog.Logger
	validation   Service
	jwtValidator middleware.TokenValidator
	recentLimit  int
}

// New creates a validation Handler. recentLimit caps the admin listing page
// size.
func New(validation Service, logger *slog.Logger, jwtValidator middleware.TokenValidator, recentLimit int) *Handler {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &Handler{
		logger:       logger,
		validation:   validation,
		jwtValidator: jwtValidator,
		recentLimit:  recentLimit,
	}
}

// Register registers the validation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.ContentTypeJSON).Post("/sin/validate", h.handleValidate)
		r.With(middleware.RequireAdmin(h.jwtValidator, h.logger)).
			Get("/validations/recent", h.handleRecent)
	})
}

// handleValidate answers whether the posted value is a well-formed SIN and,
// when it is, which jurisdictions could have issued it. A failed parse is a
// 200 with valid=false; error envelopes are reserved for malformed requests.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.validation.Validate(ctx, req.SIN)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "validation failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newValidateResponse(result))
}

// handleRecent lists the newest validation records. Admin only. A digest
// query parameter narrows the listing to the records sharing that SIN digest,
// which is how repeated checks of one number are correlated.
func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	var (
		records []models.ValidationRecord
		err     error
	)
	if digest := r.URL.Query().Get("digest"); digest != "" {
		records, err = h.validation.ListByDigest(ctx, digest, limit)
	} else {
		records, err = h.validation.ListRecent(ctx, limit)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list validations",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list validations"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newRecentResponse(records))
}
