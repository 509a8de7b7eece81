package models

import "time"

// Event types written to the balance event log.
const (
	EventParamsChanged   = "PARAMS_CHANGED"
	EventParamsRejected  = "PARAMS_REJECTED"
	EventAlarmChanged    = "ALARM_CHANGED"
	EventRecomputeFailed = "RECOMPUTE_FAILED"
)

// BalanceEvent is a single operator-facing log entry.
type BalanceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // PARAMS_CHANGED | PARAMS_REJECTED | ALARM_CHANGED | RECOMPUTE_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
