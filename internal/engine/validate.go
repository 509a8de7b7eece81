package engine

import (
	"errors"
	"fmt"
	"strings"

	"molten_balance/internal/models"
)

// ErrInvalidParams marks a snapshot that must not enter the engine.
var ErrInvalidParams = errors.New("invalid operating parameters")

// DefaultTapholePool is used when no pool is configured.
var DefaultTapholePool = []int{1, 2, 3, 4}

// ValidationError lists every problem found in one snapshot.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidParams.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidParams }

// Normalize fills unset selections with defaults and clamps out-of-range
// values that are tolerated rather than rejected. The input is not modified.
func Normalize(p models.OperatingParams) models.OperatingParams {
	if p.Progress.Mode == "" {
		p.Progress.Mode = models.ChargeModeRate
	}
	if p.Options.ProductionModel == "" {
		p.Options.ProductionModel = models.ProductionCharge
	}
	if p.Options.TapOutputSource == "" {
		p.Options.TapOutputSource = models.TapOutputPlan
	}
	if p.Options.AlarmPolicy == "" {
		p.Options.AlarmPolicy = models.AlarmByRate
	}
	if p.Options.CorrectionChain == "" {
		p.Options.CorrectionChain = models.ChainChargeBalance
	}
	if p.Options.CorrectionFactor == 0 {
		p.Options.CorrectionFactor = 1
	} else {
		p.Options.CorrectionFactor = ClampCorrectionFactor(p.Options.CorrectionFactor)
	}
	if p.Chemistry.K == 0 {
		p.Chemistry.K = 1
	}
	if len(p.Tapholes.Pool) == 0 {
		p.Tapholes.Pool = append([]int(nil), DefaultTapholePool...)
	} else {
		p.Tapholes.Pool = append([]int(nil), p.Tapholes.Pool...)
	}
	return p
}

// Validate rejects snapshots whose arithmetic would be undefined or whose
// selections are unknown. It expects a normalized snapshot.
func Validate(p models.OperatingParams) error {
	var v validator

	v.positive("charge.ore_size_mm", p.Charge.OreSizeMM)
	v.positive("charge.coke_size_mm", p.Charge.CokeSizeMM)
	v.positive("charge.slag_ratio", p.Charge.SlagRatio)
	v.positive("charge.base_reduction_eff", p.Charge.BaseReductionEff)
	v.nonNegative("charge.ore_per_charge_ton", p.Charge.OrePerChargeTon)
	if p.Charge.IronContentPct < 0 || p.Charge.IronContentPct > 100 {
		v.addf("charge.iron_content_pct must be within [0, 100], got %g", p.Charge.IronContentPct)
	}

	v.positive("chemistry.k", p.Chemistry.K)
	v.positive("taps.lead_speed", p.Taps.LeadSpeed)
	v.positive("taps.follow_speed", p.Taps.FollowSpeed)
	v.nonNegative("taps.lead_target_ton", p.Taps.LeadTargetTon)
	v.nonNegative("lag.base_minutes", p.Lag.BaseMinutes)
	v.nonNegative("daily_plan_ton", p.DailyPlanTon)
	if p.Taps.CompletedTaps < 0 {
		v.addf("taps.completed_taps must be >= 0, got %d", p.Taps.CompletedTaps)
	}
	if p.Taps.PlannedTaps < 0 {
		v.addf("taps.planned_taps must be >= 0, got %d", p.Taps.PlannedTaps)
	}

	switch p.Progress.Mode {
	case models.ChargeModeRate:
		v.nonNegative("progress.charge_rate", p.Progress.ChargeRate)
	case models.ChargeModeCount:
		v.nonNegative("progress.charge_count", p.Progress.ChargeCount)
		v.nonNegative("progress.charge_rate", p.Progress.ChargeRate)
	default:
		v.addf("progress.mode %q is not one of rate, count", p.Progress.Mode)
	}

	switch p.Options.ProductionModel {
	case models.ProductionCharge:
	case models.ProductionPlan:
		v.positive("daily_plan_ton", p.DailyPlanTon)
	default:
		v.addf("options.production_model %q is not one of charge, plan", p.Options.ProductionModel)
	}

	switch p.Options.TapOutputSource {
	case models.TapOutputPlan:
	case models.TapOutputFixed:
		v.positive("taps.fixed_avg_tap_ton", p.Taps.FixedAvgTapTon)
	case models.TapOutputTheoretical:
		v.positive("daily_plan_ton", p.DailyPlanTon)
	default:
		v.addf("options.tap_output_source %q is not one of fixed, plan, theoretical", p.Options.TapOutputSource)
	}

	switch p.Options.AlarmPolicy {
	case models.AlarmByRate, models.AlarmByTonnage:
	default:
		v.addf("options.alarm_policy %q is not one of rate, tonnage", p.Options.AlarmPolicy)
	}

	switch p.Options.CorrectionChain {
	case models.ChainChargeBalance:
	case models.ChainReactionRate:
		v.positive("process.iron_generation_rate", p.Process.IronGenerationRate)
	default:
		v.addf("options.correction_chain %q is not one of charge_balance, reaction_rate", p.Options.CorrectionChain)
	}

	v.tapholes(p.Tapholes)

	// The yield factor is only meaningful once the sizes are known to be safe.
	if len(v.problems) == 0 {
		if f := ReductionEfficiency(p); !(f > 0) {
			v.addf("reduction efficiency factor must be positive, got %g", f)
		}
	}

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) positive(field string, x float64) {
	if !(x > 0) {
		v.addf("%s must be > 0, got %g", field, x)
	}
}

func (v *validator) nonNegative(field string, x float64) {
	if !(x >= 0) {
		v.addf("%s must be >= 0, got %g", field, x)
	}
}

func (v *validator) tapholes(a models.TapholeAssignment) {
	seen := make(map[int]bool, len(a.Pool))
	for _, id := range a.Pool {
		if seen[id] {
			v.addf("tapholes.pool contains %d twice", id)
		}
		seen[id] = true
	}
	if !seen[a.Lead] {
		v.addf("tapholes.lead %d is not in the pool", a.Lead)
	}
	if !seen[a.Follow] {
		v.addf("tapholes.follow %d is not in the pool", a.Follow)
	}
	if a.Lead == a.Follow {
		v.addf("tapholes.lead and tapholes.follow must differ, both are %d", a.Lead)
	}
	if a.LastClosed != 0 && !seen[a.LastClosed] {
		v.addf("tapholes.last_closed %d is not in the pool", a.LastClosed)
	}
}
