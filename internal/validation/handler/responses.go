package handler

import (
	"time"

	"singate/internal/validation/models"
	"singate/internal/validation/service"
	"singate/pkg/sin"
)

// JurisdictionView carries one possible issuing jurisdiction with the facets
// clients otherwise re-derive themselves.
type JurisdictionView struct {
	Tag        string `json:"tag"`
	IsProvince bool   `json:"is_province"`
	IsPerson   bool   `json:"is_person"`
}

// ValidateResponse is the body of POST /v1/sin/validate. Outcome is always
// set; Formatted and Jurisdictions only appear for valid numbers.
type ValidateResponse struct {
	Valid         bool               `json:"valid"`
	Outcome       string             `json:"outcome"`
	Formatted     string             `json:"formatted,omitempty"`
	Jurisdictions []JurisdictionView `json:"jurisdictions,omitempty"`
}

func newValidateResponse(result service.Result) ValidateResponse {
	resp := ValidateResponse{
		Valid:     result.Valid,
		Outcome:   result.Outcome,
		Formatted: result.Formatted,
	}
	if len(result.Jurisdictions) > 0 {
		resp.Jurisdictions = make([]JurisdictionView, len(result.Jurisdictions))
		for i, j := range result.Jurisdictions {
			resp.Jurisdictions[i] = newJurisdictionView(j)
		}
	}
	return resp
}

func newJurisdictionView(j sin.Jurisdiction) JurisdictionView {
	return JurisdictionView{
		Tag:        j.String(),
		IsProvince: j.IsProvince(),
		IsPerson:   j.IsPerson(),
	}
}

// RecordView is one validation record on the admin surface. It exposes the
// masked rendering and digest, never a full number.
type RecordView struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id,omitempty"`
	SINMasked     string    `json:"sin_masked,omitempty"`
	SINDigest     string    `json:"sin_digest,omitempty"`
	Outcome       string    `json:"outcome"`
	Valid         bool      `json:"valid"`
	Jurisdictions []string  `json:"jurisdictions,omitempty"`
	ClientIP      string    `json:"client_ip,omitempty"`
	Device        string    `json:"device,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// RecentResponse is the body of GET /v1/validations/recent.
type RecentResponse struct {
	Records []RecordView `json:"records"`
}

func newRecentResponse(records []models.ValidationRecord) RecentResponse {
	views := make([]RecordView, len(records))
	for i, r := range records {
		views[i] = RecordView{
			ID:            r.ID.String(),
			RequestID:     r.RequestID,
			SINMasked:     r.SINMasked,
			SINDigest:     r.SINDigest,
			Outcome:       r.Outcome,
			Valid:         r.Valid,
			Jurisdictions: r.Jurisdictions,
			ClientIP:      r.ClientIP,
			Device:        r.Device,
			CheckedAt:     r.CheckedAt,
		}
	}
	return RecentResponse{Records: views}
}
