package engine

import (
	"math"
	"sort"
	"time"

	"molten_balance/internal/models"
)

// Taphole drill bit diameters in millimetres.
const (
	BitSmall  = 43
	BitMedium = 45
	BitLarge  = 48
)

// Next-tap interval bands.
const (
	IntervalRelaxed   = "15–20 min"
	IntervalNormal    = "10–15 min"
	IntervalShort     = "5–10 min"
	IntervalImmediate = "immediate (0–5 min)"
)

// Bit selection bands. They are fixed and do not follow the configurable
// alarm thresholds.
const (
	bitSmallMaxTon   = 100.0
	bitSmallMaxRate  = 5.0
	bitMediumMaxTon  = 150.0
	bitMediumMaxRate = 7.0
)

// BitDiameter picks the first band whose tonnage and rate limits both hold.
func BitDiameter(residualTon, residualRate float64) int {
	switch {
	case residualTon < bitSmallMaxTon && residualRate < bitSmallMaxRate:
		return BitSmall
	case residualTon < bitMediumMaxTon && residualRate < bitMediumMaxRate:
		return BitMedium
	default:
		return BitLarge
	}
}

// NextTapInterval recommends how soon the next tap should open.
func NextTapInterval(residualRate float64, t Thresholds) string {
	switch {
	case residualRate < t.RateLow:
		return IntervalRelaxed
	case residualRate < t.RateCaution:
		return IntervalNormal
	case residualRate < t.RateCritical:
		return IntervalShort
	default:
		return IntervalImmediate
	}
}

// IdleGap predicts when the lead tap reaches its target volume and how many
// minutes that lies after the follow tap opened. Both are zero until the lead
// tap has started.
func IdleGap(taps models.TapRecord) (time.Time, float64) {
	if taps.LeadStart.IsZero() || taps.LeadSpeed <= 0 {
		return time.Time{}, 0
	}
	closeAt := taps.LeadStart.Add(time.Duration(math.Round(taps.LeadTargetTon / taps.LeadSpeed * float64(time.Minute))))
	if taps.FollowStart.IsZero() {
		return closeAt, 0
	}
	return closeAt, math.Max(closeAt.Sub(taps.FollowStart).Minutes(), 0)
}

// Rotation splits the pool into the open pair and the standby holes, both
// sorted. The last-closed hole does not affect the split.
func Rotation(a models.TapholeAssignment) ([]int, []int) {
	active := []int{a.Lead, a.Follow}
	sort.Ints(active)

	standby := make([]int, 0, len(a.Pool))
	for _, id := range a.Pool {
		if id != a.Lead && id != a.Follow {
			standby = append(standby, id)
		}
	}
	sort.Ints(standby)
	return active, standby
}
