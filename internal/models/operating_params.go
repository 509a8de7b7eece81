package models

import "time"

// ChargeMode selects how the elapsed charge count is obtained.
type ChargeMode string

const (
	ChargeModeRate  ChargeMode = "rate"  // charge_rate x elapsed hours
	ChargeModeCount ChargeMode = "count" // operator-entered count
)

// ProductionModel selects how cumulative production is estimated.
type ProductionModel string

const (
	ProductionCharge ProductionModel = "charge" // integrate ore charged since shift start
	ProductionPlan   ProductionModel = "plan"   // prorate the theoretical daily plan
)

// TapOutputSource selects the average output credited per completed tap.
type TapOutputSource string

const (
	TapOutputFixed       TapOutputSource = "fixed"       // FixedAvgTapTon
	TapOutputPlan        TapOutputSource = "plan"        // production / planned taps
	TapOutputTheoretical TapOutputSource = "theoretical" // daily plan / planned taps
)

// AlarmPolicy selects the residual threshold scheme.
type AlarmPolicy string

const (
	AlarmByRate    AlarmPolicy = "rate"
	AlarmByTonnage AlarmPolicy = "tonnage"
)

// CorrectionChain selects which reduction-efficiency corrections apply.
type CorrectionChain string

const (
	ChainChargeBalance CorrectionChain = "charge_balance" // FeO, Si, hot-metal temperature
	ChainReactionRate  CorrectionChain = "reaction_rate"  // blast temperature, PCI, iron rate
)

// ChargeParameters describes one charge and the burden it carries.
type ChargeParameters struct {
	OrePerChargeTon  float64 `json:"ore_per_charge_ton" yaml:"ore_per_charge_ton"`
	CokePerChargeTon float64 `json:"coke_per_charge_ton" yaml:"coke_per_charge_ton"`
	OreCokeRatio     float64 `json:"ore_coke_ratio" yaml:"ore_coke_ratio"`
	IronContentPct   float64 `json:"iron_content_pct" yaml:"iron_content_pct"`
	SlagRatio        float64 `json:"slag_ratio" yaml:"slag_ratio"` // hot metal : slag
	OreSizeMM        float64 `json:"ore_size_mm" yaml:"ore_size_mm"`
	CokeSizeMM       float64 `json:"coke_size_mm" yaml:"coke_size_mm"`
	BaseReductionEff float64 `json:"base_reduction_eff" yaml:"base_reduction_eff"`
	MeltingCapacity  float64 `json:"melting_capacity" yaml:"melting_capacity"`
	FurnaceVolumeM3  float64 `json:"furnace_volume_m3" yaml:"furnace_volume_m3"`
}

// ProcessIndices are the blast and injection settings in effect.
type ProcessIndices struct {
	BlastVolume         float64 `json:"blast_volume" yaml:"blast_volume"`
	OxygenEnrichmentPct float64 `json:"oxygen_enrichment_pct" yaml:"oxygen_enrichment_pct"`
	OxygenBlowRate      float64 `json:"oxygen_blow_rate" yaml:"oxygen_blow_rate"`
	Humidification      float64 `json:"humidification" yaml:"humidification"`
	TopPressure         float64 `json:"top_pressure" yaml:"top_pressure"`
	BlastPressure       float64 `json:"blast_pressure" yaml:"blast_pressure"`
	HotBlastTempC       float64 `json:"hot_blast_temp_c" yaml:"hot_blast_temp_c"`
	PCIRate             float64 `json:"pci_rate" yaml:"pci_rate"`
	IronGenerationRate  float64 `json:"iron_generation_rate" yaml:"iron_generation_rate"`
	HotMetalTempC       float64 `json:"hot_metal_temp_c" yaml:"hot_metal_temp_c"` // measured at the runner
}

// ChemistryCorrection carries slag/metal chemistry and the free-form K factor.
type ChemistryCorrection struct {
	SlagFeOPct    float64 `json:"slag_feo_pct" yaml:"slag_feo_pct"`
	HotMetalSiPct float64 `json:"hot_metal_si_pct" yaml:"hot_metal_si_pct"`
	K             float64 `json:"k" yaml:"k"`
}

// ChargeProgress reports how far charging has advanced in the shift.
type ChargeProgress struct {
	Mode        ChargeMode `json:"mode" yaml:"mode"`
	ChargeRate  float64    `json:"charge_rate" yaml:"charge_rate"`   // charges per hour
	ChargeCount float64    `json:"charge_count" yaml:"charge_count"` // used when Mode == count
}

// TapRecord is the tapping history and the two taps in progress.
type TapRecord struct {
	LeadStart      time.Time `json:"lead_start" yaml:"lead_start"`
	FollowStart    time.Time `json:"follow_start" yaml:"follow_start"`
	LeadSpeed      float64   `json:"lead_speed" yaml:"lead_speed"`     // ton/min
	FollowSpeed    float64   `json:"follow_speed" yaml:"follow_speed"` // ton/min
	LeadTargetTon  float64   `json:"lead_target_ton" yaml:"lead_target_ton"`
	CompletedTaps  int       `json:"completed_taps" yaml:"completed_taps"`
	PlannedTaps    int       `json:"planned_taps" yaml:"planned_taps"`
	FixedAvgTapTon float64   `json:"fixed_avg_tap_ton,omitempty" yaml:"fixed_avg_tap_ton"`
}

// TapholeAssignment names the open tapholes out of the furnace's pool.
type TapholeAssignment struct {
	Pool       []int `json:"pool" yaml:"pool"`
	Lead       int   `json:"lead" yaml:"lead"`
	Follow     int   `json:"follow" yaml:"follow"`
	LastClosed int   `json:"last_closed,omitempty" yaml:"last_closed"`
}

// MeltingLagConfig holds the operator's base charge-to-melt delay.
type MeltingLagConfig struct {
	BaseMinutes float64 `json:"base_minutes" yaml:"base_minutes"`
}

// Options are the strategy selections for one recompute.
type Options struct {
	ProductionModel  ProductionModel `json:"production_model" yaml:"production_model"`
	TapOutputSource  TapOutputSource `json:"tap_output_source" yaml:"tap_output_source"`
	AlarmPolicy      AlarmPolicy     `json:"alarm_policy" yaml:"alarm_policy"`
	CorrectionChain  CorrectionChain `json:"correction_chain" yaml:"correction_chain"`
	CorrectionFactor float64         `json:"correction_factor" yaml:"correction_factor"` // target temperature, [0.5, 1.2]
}

// OperatingParams is the full input snapshot for a balance recompute.
type OperatingParams struct {
	Charge       ChargeParameters    `json:"charge" yaml:"charge"`
	Process      ProcessIndices      `json:"process" yaml:"process"`
	Chemistry    ChemistryCorrection `json:"chemistry" yaml:"chemistry"`
	Progress     ChargeProgress      `json:"progress" yaml:"progress"`
	Taps         TapRecord           `json:"taps" yaml:"taps"`
	Tapholes     TapholeAssignment   `json:"tapholes" yaml:"tapholes"`
	Lag          MeltingLagConfig    `json:"lag" yaml:"lag"`
	Options      Options             `json:"options" yaml:"options"`
	DailyPlanTon float64             `json:"daily_plan_ton" yaml:"daily_plan_ton"` // theoretical production for 24h
	UpdatedAt    time.Time           `json:"updated_at" yaml:"-"`
}
