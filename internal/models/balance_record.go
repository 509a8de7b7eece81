package models

import "time"

// AlarmStatus is the operating-status tier derived from the residual.
type AlarmStatus string

const (
	StatusNormal    AlarmStatus = "normal"
	StatusCaution   AlarmStatus = "caution"
	StatusCritical  AlarmStatus = "critical"
	StatusAdvisory  AlarmStatus = "advisory"
	StatusExcess    AlarmStatus = "excess-accumulation"
	StatusEmergency AlarmStatus = "emergency"
)

// BalanceRecord is one recompute of the molten mass balance.
// Records are immutable once produced; the report log only appends them.
type BalanceRecord struct {
	ID              string          `json:"id,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	ShiftStart      time.Time       `json:"shift_start"`
	ElapsedMinutes  float64         `json:"elapsed_minutes"`
	ElapsedCharges  float64         `json:"elapsed_charges"`
	ProductionModel ProductionModel `json:"production_model"`
	ReductionFactor float64         `json:"reduction_factor"`
	LagMinutes      float64         `json:"lag_minutes"`

	ProductionTon float64 `json:"production_ton"`
	HotMetalTon   float64 `json:"hot_metal_ton,omitempty"` // charge model only
	SlagTon       float64 `json:"slag_ton,omitempty"`      // charge model only
	TappedTon     float64 `json:"tapped_ton"`
	ResidualTon   float64 `json:"residual_ton"`
	ResidualRate  float64 `json:"residual_rate_pct"`

	AlarmPolicy AlarmPolicy `json:"alarm_policy"`
	Status      AlarmStatus `json:"status"`

	BitDiameterMM        int       `json:"bit_diameter_mm"`
	NextTapInterval      string    `json:"next_tap_interval"`
	LeadCloseAt          time.Time `json:"lead_close_at,omitempty"`
	IdleGapMinutes       float64   `json:"idle_gap_minutes"`
	AvgTapTon            float64   `json:"avg_tap_ton"`
	AvgHotMetalPerTapTon float64   `json:"avg_hot_metal_per_tap_ton"`
	AvgSlagPerTapTon     float64   `json:"avg_slag_per_tap_ton"`

	TargetTempC   float64 `json:"target_temp_c"`
	MeasuredTempC float64 `json:"measured_temp_c"`

	ActiveTapholes    []int `json:"active_tapholes"`
	StandbyTapholes   []int `json:"standby_tapholes"`
	LastClosedTaphole int   `json:"last_closed_taphole,omitempty"`
}
