package engine

import (
	"fmt"
	"time"
)

// LagReference is the operating point at which the base melting lag applies.
type LagReference struct {
	ChargeRate     float64 `mapstructure:"charge_rate"` // charges per hour
	BlastVolume    float64 `mapstructure:"blast_volume"`
	OxygenPct      float64 `mapstructure:"oxygen_pct"`
	Humidification float64 `mapstructure:"humidification"`
	ReductionEff   float64 `mapstructure:"reduction_eff"`
}

// DefaultLagReference returns the reference point used for lag deviation.
func DefaultLagReference() LagReference {
	return LagReference{
		ChargeRate:     5.5,
		BlastVolume:    4000,
		OxygenPct:      3.0,
		Humidification: 20,
		ReductionEff:   1.0,
	}
}

// Thresholds are the residual bands used by the alarm classifier and the
// next-tap interval. Each scheme must be strictly increasing.
type Thresholds struct {
	RateLow      float64 `mapstructure:"rate_low"`      // %, below: relaxed tapping
	RateCaution  float64 `mapstructure:"rate_caution"`  // %
	RateCritical float64 `mapstructure:"rate_critical"` // %

	TonAdvisory  float64 `mapstructure:"ton_advisory"`  // ton
	TonExcess    float64 `mapstructure:"ton_excess"`    // ton
	TonEmergency float64 `mapstructure:"ton_emergency"` // ton
}

// DefaultThresholds returns the 5/7/9 % and 100/150/200 t bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RateLow:      5,
		RateCaution:  7,
		RateCritical: 9,
		TonAdvisory:  100,
		TonExcess:    150,
		TonEmergency: 200,
	}
}

// Validate reports whether both band sets are positive and strictly ordered.
func (t Thresholds) Validate() error {
	if !(t.RateLow > 0 && t.RateLow < t.RateCaution && t.RateCaution < t.RateCritical && t.RateCritical <= 100) {
		return fmt.Errorf("rate thresholds must satisfy 0 < low < caution < critical <= 100, got %.2f/%.2f/%.2f",
			t.RateLow, t.RateCaution, t.RateCritical)
	}
	if !(t.TonAdvisory > 0 && t.TonAdvisory < t.TonExcess && t.TonExcess < t.TonEmergency) {
		return fmt.Errorf("tonnage thresholds must satisfy 0 < advisory < excess < emergency, got %.1f/%.1f/%.1f",
			t.TonAdvisory, t.TonExcess, t.TonEmergency)
	}
	return nil
}

// Settings are deployment-level knobs that do not change between recomputes.
type Settings struct {
	ShiftStartHour int // local hour the production day starts
	Location       *time.Location
	LagReference   LagReference
	Thresholds     Thresholds
}

// DefaultSettings starts the shift at 07:00 local time.
func DefaultSettings() Settings {
	return Settings{
		ShiftStartHour: 7,
		Location:       time.Local,
		LagReference:   DefaultLagReference(),
		Thresholds:     DefaultThresholds(),
	}
}

// Engine evaluates the mass balance. It holds no state between recomputes and
// is safe for concurrent use.
type Engine struct {
	settings Settings
}

// New validates the settings and returns an engine.
func New(s Settings) (*Engine, error) {
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.ShiftStartHour < 0 || s.ShiftStartHour > 23 {
		return nil, fmt.Errorf("shift start hour must be within [0, 23], got %d", s.ShiftStartHour)
	}
	if err := s.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Engine{settings: s}, nil
}

// Settings returns a copy of the engine settings.
func (e *Engine) Settings() Settings {
	return e.settings
}
