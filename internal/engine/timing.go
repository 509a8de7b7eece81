package engine

import (
	"time"

	"molten_balance/internal/models"
)

const minutesPerDay = 1440.0

// ShiftWindow returns the start of the production day containing now and the
// minutes elapsed since, clamped to [0, 1440]. Before the start hour the
// window belongs to the previous calendar day.
func ShiftWindow(now time.Time, startHour int, loc *time.Location) (time.Time, float64) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), startHour, 0, 0, 0, loc)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start, clamp(now.Sub(start).Minutes(), 0, minutesPerDay)
}

// ElapsedCharges is charge_rate x elapsed hours in rate mode, otherwise the
// operator-entered count.
func ElapsedCharges(pr models.ChargeProgress, elapsedMinutes float64) float64 {
	if pr.Mode == models.ChargeModeCount {
		return pr.ChargeCount
	}
	return pr.ChargeRate * (elapsedMinutes / 60)
}

// minutesSince is the non-negative number of minutes from t to now. A zero t
// means the event has not happened and yields 0.
func minutesSince(now, t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	if m := now.Sub(t).Minutes(); m > 0 {
		return m
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
