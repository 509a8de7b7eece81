package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"molten_balance/internal/models"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrInvalidStatus    = errors.New("invalid status filter")
	ErrInvalidEventType = errors.New("invalid event type filter")
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", PARAMS_CHANGED, PARAMS_REJECTED, ALARM_CHANGED, RECOMPUTE_FAILED
}

// ReportFilter selects balance records by time range and alarm status.
type ReportFilter struct {
	From   time.Time
	To     time.Time
	Status string // "" or one of the alarm statuses
}

// normalize returns the filter with UTC bounds and an upper-case event type.
func (f LogFilter) normalize() (LogFilter, error) {
	from, to, err := utcRange(f.From, f.To)
	if err != nil {
		return LogFilter{}, err
	}
	typ := strings.ToUpper(strings.TrimSpace(f.Type))
	switch typ {
	case "", models.EventParamsChanged, models.EventParamsRejected,
		models.EventAlarmChanged, models.EventRecomputeFailed:
	default:
		return LogFilter{}, fmt.Errorf("%w: %q", ErrInvalidEventType, f.Type)
	}
	return LogFilter{From: from, To: to, Type: typ}, nil
}

// normalize returns the filter with UTC bounds and a lower-case status.
func (f ReportFilter) normalize() (ReportFilter, error) {
	from, to, err := utcRange(f.From, f.To)
	if err != nil {
		return ReportFilter{}, err
	}
	status := models.AlarmStatus(strings.ToLower(strings.TrimSpace(f.Status)))
	switch status {
	case "", models.StatusNormal, models.StatusCaution, models.StatusCritical,
		models.StatusAdvisory, models.StatusExcess, models.StatusEmergency:
	default:
		return ReportFilter{}, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	return ReportFilter{From: from, To: to, Status: string(status)}, nil
}

// utcRange converts non-zero bounds to UTC and checks their order.
func utcRange(from, to time.Time) (time.Time, time.Time, error) {
	if !from.IsZero() {
		from = from.UTC()
	}
	if !to.IsZero() {
		to = to.UTC()
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}
