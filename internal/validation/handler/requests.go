package handler

import (
	dErrors "singate/pkg/domain-errors"
)

// ValidateRequest is the body of POST /v1/sin/validate. The candidate number
// is free-form: digits with any mix of separators.
type ValidateRequest struct {
	SIN string `json:"sin"`
}

// Validate checks request shape only. Whether the value is an actual SIN is
// the service's answer, not a request error.
func (r *ValidateRequest) Validate() error {
	if r.SIN == "" {
		return dErrors.New(dErrors.CodeValidation, "sin is required")
	}
	if len(r.SIN) > 64 {
		return dErrors.New(dErrors.CodeValidation, "sin is implausibly long")
	}
	return nil
}
