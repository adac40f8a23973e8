package audit

import "time"

// Actions emitted by the validation service.
const (
	ActionSINValidated = "sin.validated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out. Events carry the masked SIN
// rendering only, never the number itself.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
	Outcome       string    `json:"outcome"`
	SINMasked     string    `json:"sin_masked,omitempty"`
	Jurisdictions []string  `json:"jurisdictions,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
	ClientIPHint  string    `json:"client_ip_hint,omitempty"`
}
