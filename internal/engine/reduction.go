package engine

import "molten_balance/internal/models"

const (
	reductionDamping       = 0.9
	referenceHotMetalTempC = 1500.0
	referenceBlastTempC    = 1100.0
	referenceIronRate      = 9.0
)

// ReductionFactors is the breakdown of the reduction-efficiency correction
// chain. Corrections that do not belong to the selected chain stay at 1.
type ReductionFactors struct {
	Size          float64 `json:"size"`
	Melting       float64 `json:"melting"`
	Gas           float64 `json:"gas"`
	Oxygen        float64 `json:"oxygen"`
	Humidity      float64 `json:"humidity"`
	TopPressure   float64 `json:"top_pressure"`
	BlastPressure float64 `json:"blast_pressure"`
	FeO           float64 `json:"feo"`
	Si            float64 `json:"si"`
	TempDeviation float64 `json:"temp_deviation"`
	PCI           float64 `json:"pci"`
	IronRate      float64 `json:"iron_rate"`
}

// Product multiplies every sub-factor.
func (f ReductionFactors) Product() float64 {
	return f.Size * f.Melting * f.Gas * f.Oxygen * f.Humidity * f.TopPressure *
		f.BlastPressure * f.FeO * f.Si * f.TempDeviation * f.PCI * f.IronRate
}

// ReductionBreakdown computes each correction for the snapshot's chain.
// Particle sizes must already be validated as positive.
func ReductionBreakdown(p models.OperatingParams) ReductionFactors {
	c, proc, chem := p.Charge, p.Process, p.Chemistry

	f := ReductionFactors{
		Size:          (20/c.OreSizeMM + 60/c.CokeSizeMM) / 2,
		Melting:       1 + ((c.MeltingCapacity-2500)/500)*0.05,
		Gas:           1 + (proc.BlastVolume-4000)/8000,
		Oxygen:        1 + proc.OxygenEnrichmentPct/10,
		Humidity:      1 - proc.Humidification/100,
		TopPressure:   1 + (proc.TopPressure-2.5)*0.05,
		BlastPressure: 1 + (proc.BlastPressure-3.5)*0.03,
		FeO:           1,
		Si:            1,
		PCI:           1,
		IronRate:      1,
	}

	switch p.Options.CorrectionChain {
	case models.ChainReactionRate:
		f.TempDeviation = tempDeviation(proc.HotBlastTempC, referenceBlastTempC)
		f.PCI = 1 + (proc.PCIRate-150)/100*0.02
		f.IronRate = proc.IronGenerationRate / referenceIronRate
	default:
		f.FeO = 1 - chem.SlagFeOPct/10
		f.Si = 1 + chem.HotMetalSiPct/5
		f.TempDeviation = tempDeviation(proc.HotMetalTempC, referenceHotMetalTempC)
	}
	return f
}

func tempDeviation(actual, reference float64) float64 {
	return 1 + ((actual-reference)/100)*0.03
}

// ReductionEfficiency returns the multiplicative yield factor
// base x product(corrections) x K x 0.9.
func ReductionEfficiency(p models.OperatingParams) float64 {
	return p.Charge.BaseReductionEff * ReductionBreakdown(p).Product() * p.Chemistry.K * reductionDamping
}
