package engine

import "molten_balance/internal/models"

const (
	baseTargetTempC     = 1500.0
	minCorrectionFactor = 0.5
	maxCorrectionFactor = 1.2
)

// TargetTemperature derives the hot-metal temperature to aim for from the
// blast settings and slag ratio.
func TargetTemperature(proc models.ProcessIndices, slagRatio, correctionFactor float64) float64 {
	offset := proc.OxygenEnrichmentPct*5 +
		(proc.BlastVolume-4000)*0.02 +
		(slagRatio-2.25)*10 +
		(proc.TopPressure-2.5)*8
	return baseTargetTempC + offset*ClampCorrectionFactor(correctionFactor)
}

// ClampCorrectionFactor limits the factor to [0.5, 1.2].
func ClampCorrectionFactor(f float64) float64 {
	return clamp(f, minCorrectionFactor, maxCorrectionFactor)
}
