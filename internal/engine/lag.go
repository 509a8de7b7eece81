package engine

import (
	"math"

	"molten_balance/internal/models"
)

// LagInputs are the current operating values that shift the melting lag.
type LagInputs struct {
	ChargeRate       float64
	BlastVolume      float64
	OxygenPct        float64
	Humidification   float64
	BaseReductionEff float64
}

// MeltingLag returns the charge-to-melt delay in minutes, floored at 0.
// Faster charging, more blast, more oxygen and better base reduction shorten
// it; humidification lengthens it.
func MeltingLag(cfg models.MeltingLagConfig, ref LagReference, in LagInputs) float64 {
	dCharge := -10 * (in.ChargeRate - ref.ChargeRate)
	dBlast := -5 * (in.BlastVolume - ref.BlastVolume) / 100
	dOxygen := -5 * (in.OxygenPct - ref.OxygenPct)
	dHumidity := 10 * (in.Humidification - ref.Humidification) / 10
	dReduction := 15 * (ref.ReductionEff - in.BaseReductionEff)

	return math.Max(cfg.BaseMinutes+dCharge+dBlast+dOxygen+dHumidity+dReduction, 0)
}

// effectiveChargeRate is the charge rate fed to the lag estimator. In count
// mode without an explicit rate it is derived from the count so far, and
// before any time has elapsed the reference rate keeps the lag neutral.
func effectiveChargeRate(pr models.ChargeProgress, elapsedMinutes float64, ref LagReference) float64 {
	if pr.Mode == models.ChargeModeRate || pr.ChargeRate > 0 {
		return pr.ChargeRate
	}
	if elapsedMinutes > 0 {
		return pr.ChargeCount * 60 / elapsedMinutes
	}
	return ref.ChargeRate
}
