package engine

import (
	"time"

	"molten_balance/internal/models"
)

// Compute evaluates the full balance for one snapshot at one instant. now is
// the only clock reading used: shift, lead and follow elapsed times all derive
// from it, so equal inputs always produce equal records.
func (e *Engine) Compute(p models.OperatingParams, now time.Time) (models.BalanceRecord, error) {
	p = Normalize(p)
	if err := Validate(p); err != nil {
		return models.BalanceRecord{}, err
	}
	s := e.settings

	shiftStart, elapsed := ShiftWindow(now, s.ShiftStartHour, s.Location)
	factor := ReductionEfficiency(p)
	charges := ElapsedCharges(p.Progress, elapsed)
	lag := MeltingLag(p.Lag, s.LagReference, LagInputs{
		ChargeRate:       effectiveChargeRate(p.Progress, elapsed, s.LagReference),
		BlastVolume:      p.Process.BlastVolume,
		OxygenPct:        p.Process.OxygenEnrichmentPct,
		Humidification:   p.Process.Humidification,
		BaseReductionEff: p.Charge.BaseReductionEff,
	})

	var prod ProductionEstimate
	if p.Options.ProductionModel == models.ProductionPlan {
		prod = PlanProduction(p.DailyPlanTon, elapsed, lag)
	} else {
		prod = ChargeProduction(ChargeInputs{
			OrePerChargeTon: p.Charge.OrePerChargeTon,
			ElapsedCharges:  charges,
			IronContentPct:  p.Charge.IronContentPct,
			ReductionFactor: factor,
			SlagRatio:       p.Charge.SlagRatio,
			CeilingTon:      p.DailyPlanTon,
		})
	}

	avgTap := AvgTapOutput(p.Options.TapOutputSource, p.Taps, prod.TotalTon, p.DailyPlanTon)
	tapped := Tapped(p.Taps, avgTap, now, prod.TotalTon)
	residual, rate := Residual(prod.TotalTon, tapped.TotalTon)
	closeAt, gap := IdleGap(p.Taps)
	active, standby := Rotation(p.Tapholes)

	hotMetalBasis := prod.TotalTon
	if p.Options.ProductionModel == models.ProductionCharge {
		hotMetalBasis = prod.HotMetalTon
	}
	avgHotMetal := hotMetalBasis / float64(max(p.Taps.CompletedTaps, 1))

	return models.BalanceRecord{
		Timestamp:       now,
		ShiftStart:      shiftStart,
		ElapsedMinutes:  elapsed,
		ElapsedCharges:  charges,
		ProductionModel: p.Options.ProductionModel,
		ReductionFactor: factor,
		LagMinutes:      lag,

		ProductionTon: prod.TotalTon,
		HotMetalTon:   prod.HotMetalTon,
		SlagTon:       prod.SlagTon,
		TappedTon:     tapped.TotalTon,
		ResidualTon:   residual,
		ResidualRate:  rate,

		AlarmPolicy: p.Options.AlarmPolicy,
		Status:      Classify(p.Options.AlarmPolicy, residual, rate, s.Thresholds),

		BitDiameterMM:        BitDiameter(residual, rate),
		NextTapInterval:      NextTapInterval(rate, s.Thresholds),
		LeadCloseAt:          closeAt,
		IdleGapMinutes:       gap,
		AvgTapTon:            avgTap,
		AvgHotMetalPerTapTon: avgHotMetal,
		AvgSlagPerTapTon:     avgHotMetal / p.Charge.SlagRatio,

		TargetTempC:   TargetTemperature(p.Process, p.Charge.SlagRatio, p.Options.CorrectionFactor),
		MeasuredTempC: p.Process.HotMetalTempC,

		ActiveTapholes:    active,
		StandbyTapholes:   standby,
		LastClosedTaphole: p.Tapholes.LastClosed,
	}, nil
}
