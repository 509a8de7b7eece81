package engine

import "math"

// ProductionEstimate is cumulative molten output since shift start. The plan
// model only fills TotalTon.
type ProductionEstimate struct {
	HotMetalTon float64
	SlagTon     float64
	TotalTon    float64
}

// ChargeInputs feed the charge-integration model.
type ChargeInputs struct {
	OrePerChargeTon float64
	ElapsedCharges  float64
	IronContentPct  float64
	ReductionFactor float64
	SlagRatio       float64 // must be > 0
	CeilingTon      float64 // 0 means no ceiling
}

// ChargeProduction integrates iron charged since shift start into hot metal
// and slag. When a ceiling is supplied the split is scaled down to it.
func ChargeProduction(in ChargeInputs) ProductionEstimate {
	totalOre := in.OrePerChargeTon * in.ElapsedCharges
	totalFe := totalOre * (in.IronContentPct / 100)
	hotMetal := totalFe * in.ReductionFactor
	slag := hotMetal / in.SlagRatio

	est := ProductionEstimate{HotMetalTon: hotMetal, SlagTon: slag, TotalTon: hotMetal + slag}
	if in.CeilingTon > 0 && est.TotalTon > in.CeilingTon {
		scale := in.CeilingTon / est.TotalTon
		est.HotMetalTon *= scale
		est.SlagTon *= scale
		est.TotalTon = in.CeilingTon
	}
	return est
}

// PlanProduction prorates the daily plan over the minutes elapsed after the
// melting lag has been paid.
func PlanProduction(dailyPlanTon, elapsedMinutes, lagMinutes float64) ProductionEstimate {
	adjusted := math.Max(elapsedMinutes-lagMinutes, 0)
	total := dailyPlanTon * (math.Min(adjusted, minutesPerDay) / minutesPerDay)
	return ProductionEstimate{TotalTon: total}
}
