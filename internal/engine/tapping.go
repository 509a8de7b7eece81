package engine

import (
	"time"

	"molten_balance/internal/models"
)

// fallbackPlannedTaps divides production when no tap plan was entered.
const fallbackPlannedTaps = 9

// TapEstimate is the cumulative tonnage drawn off since shift start.
type TapEstimate struct {
	CompletedTon float64
	LeadTon      float64
	FollowTon    float64
	TotalTon     float64
	Clamped      bool // raw total exceeded the production ceiling
}

// AvgTapOutput is the tonnage credited to each completed tap under the
// selected source.
func AvgTapOutput(src models.TapOutputSource, taps models.TapRecord, productionTon, dailyPlanTon float64) float64 {
	switch src {
	case models.TapOutputFixed:
		return taps.FixedAvgTapTon
	case models.TapOutputTheoretical:
		return dailyPlanTon / float64(plannedTapsOrFallback(taps.PlannedTaps))
	default:
		return productionTon / float64(plannedTapsOrFallback(taps.PlannedTaps))
	}
}

func plannedTapsOrFallback(n int) int {
	if n > 0 {
		return n
	}
	return fallbackPlannedTaps
}

// Tapped adds completed taps to what the lead and follow taps have drawn so
// far, then clamps the sum to ceilingTon.
func Tapped(taps models.TapRecord, avgTapTon float64, now time.Time, ceilingTon float64) TapEstimate {
	est := TapEstimate{
		CompletedTon: float64(taps.CompletedTaps) * avgTapTon,
		LeadTon:      taps.LeadSpeed * minutesSince(now, taps.LeadStart),
		FollowTon:    taps.FollowSpeed * minutesSince(now, taps.FollowStart),
	}
	est.TotalTon = est.CompletedTon + est.LeadTon + est.FollowTon
	if est.TotalTon > ceilingTon {
		est.TotalTon = ceilingTon
		est.Clamped = true
	}
	if est.TotalTon < 0 {
		est.TotalTon = 0
	}
	return est
}
