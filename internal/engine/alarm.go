package engine

import "molten_balance/internal/models"

// Classify maps the residual state to a status tier under one policy. Every
// tier is inclusive of its lower bound.
func Classify(policy models.AlarmPolicy, residualTon, residualRate float64, t Thresholds) models.AlarmStatus {
	if policy == models.AlarmByTonnage {
		switch {
		case residualTon >= t.TonEmergency:
			return models.StatusEmergency
		case residualTon >= t.TonExcess:
			return models.StatusExcess
		case residualTon >= t.TonAdvisory:
			return models.StatusAdvisory
		default:
			return models.StatusNormal
		}
	}

	switch {
	case residualRate >= t.RateCritical:
		return models.StatusCritical
	case residualRate >= t.RateCaution:
		return models.StatusCaution
	default:
		return models.StatusNormal
	}
}
