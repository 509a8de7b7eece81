package engine

import (
	"testing"
	"time"

	"molten_balance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeProduction_RateModelScenario(t *testing.T) {
	charges := ElapsedCharges(models.ChargeProgress{Mode: models.ChargeModeRate, ChargeRate: 5.5}, 60)
	require.InDelta(t, 5.5, charges, tol)

	est := ChargeProduction(ChargeInputs{
		OrePerChargeTon: 165,
		ElapsedCharges:  charges,
		IronContentPct:  58,
		ReductionFactor: 1.0,
		SlagRatio:       2.25,
	})
	assert.InDelta(t, 526.35, est.HotMetalTon, tol)
	assert.InDelta(t, 233.93, est.SlagTon, 0.005)
	assert.InDelta(t, 760.28, est.TotalTon, 0.005)
}

func TestChargeProduction_ScalesToCeiling(t *testing.T) {
	est := ChargeProduction(ChargeInputs{
		OrePerChargeTon: 165,
		ElapsedCharges:  5.5,
		IronContentPct:  58,
		ReductionFactor: 1.0,
		SlagRatio:       2.25,
		CeilingTon:      500,
	})
	assert.InDelta(t, 500, est.TotalTon, tol)
	assert.InDelta(t, 2.25, est.HotMetalTon/est.SlagTon, tol)
}

func TestElapsedCharges_CountMode(t *testing.T) {
	got := ElapsedCharges(models.ChargeProgress{Mode: models.ChargeModeCount, ChargeRate: 7, ChargeCount: 12}, 600)
	assert.Equal(t, 12.0, got)
}

func TestPlanProduction(t *testing.T) {
	cases := []struct {
		name         string
		elapsed, lag float64
		want         float64
	}{
		{"lag not yet paid", 30, 60, 0},
		{"quarter day after lag", 420, 60, 2250},
		{"full day", 1440, 0, 9000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := PlanProduction(9000, tc.elapsed, tc.lag)
			assert.InDelta(t, tc.want, est.TotalTon, tol)
			assert.Zero(t, est.HotMetalTon)
		})
	}
}

func TestTapped_LeadFollowAndCompleted(t *testing.T) {
	now := at(9, 0)
	taps := models.TapRecord{
		LeadStart:     now.Add(-30 * time.Minute),
		FollowStart:   now,
		LeadSpeed:     4.8,
		FollowSpeed:   4.8,
		CompletedTaps: 5,
	}

	est := Tapped(taps, 135, now, 5000)
	assert.InDelta(t, 144, est.LeadTon, tol)
	assert.Zero(t, est.FollowTon)
	assert.InDelta(t, 675, est.CompletedTon, tol)
	assert.InDelta(t, 819, est.TotalTon, tol)
	assert.False(t, est.Clamped)

	// Tapping more than was produced is clamped, never negative residual.
	est = Tapped(taps, 135, now, 760.28)
	assert.InDelta(t, 760.28, est.TotalTon, tol)
	assert.True(t, est.Clamped)

	residual, rate := Residual(760.28, est.TotalTon)
	assert.Zero(t, residual)
	assert.Zero(t, rate)
	assert.Equal(t, models.StatusNormal, Classify(models.AlarmByRate, residual, rate, DefaultThresholds()))
}

func TestTapped_FutureStartsCountAsZero(t *testing.T) {
	now := at(9, 0)
	taps := models.TapRecord{
		LeadStart:   now.Add(10 * time.Minute),
		LeadSpeed:   5,
		FollowSpeed: 5,
	}
	est := Tapped(taps, 100, now, 1000)
	assert.Zero(t, est.TotalTon)
}

func TestAvgTapOutput(t *testing.T) {
	taps := models.TapRecord{PlannedTaps: 10, FixedAvgTapTon: 135}

	assert.InDelta(t, 135, AvgTapOutput(models.TapOutputFixed, taps, 900, 12000), tol)
	assert.InDelta(t, 90, AvgTapOutput(models.TapOutputPlan, taps, 900, 12000), tol)
	assert.InDelta(t, 1200, AvgTapOutput(models.TapOutputTheoretical, taps, 900, 12000), tol)

	taps.PlannedTaps = 0
	assert.InDelta(t, 100, AvgTapOutput(models.TapOutputPlan, taps, 900, 12000), tol)
	assert.InDelta(t, 12000.0/9, AvgTapOutput(models.TapOutputTheoretical, taps, 900, 12000), tol)
}

func TestResidual_ZeroProduction(t *testing.T) {
	residual, rate := Residual(0, 0)
	assert.Zero(t, residual)
	assert.Zero(t, rate)

	residual, rate = Residual(200, 150)
	assert.InDelta(t, 50, residual, tol)
	assert.InDelta(t, 25, rate, tol)
}

func TestShiftWindow(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantMin   float64
	}{
		{"at shift start", at(7, 0), at(7, 0), 0},
		{"mid morning", at(9, 30), at(7, 0), 150},
		{"before start rolls back", at(6, 30), at(7, 0).AddDate(0, 0, -1), 1410},
		{"just after midnight", at(0, 5), at(7, 0).AddDate(0, 0, -1), 1025},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, elapsed := ShiftWindow(tc.now, 7, time.UTC)
			assert.Equal(t, tc.wantStart, start)
			assert.InDelta(t, tc.wantMin, elapsed, tol)
		})
	}
}

func TestShiftWindow_UsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	// 23:30 UTC is 08:30 KST the next day.
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	start, elapsed := ShiftWindow(now, 7, seoul)
	assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, seoul), start)
	assert.InDelta(t, 90, elapsed, tol)
}

func TestMeltingLag(t *testing.T) {
	ref := DefaultLagReference()
	base := models.MeltingLagConfig{BaseMinutes: 60}
	neutral := LagInputs{ChargeRate: 5.5, BlastVolume: 4000, OxygenPct: 3, Humidification: 20, BaseReductionEff: 1}

	assert.InDelta(t, 60, MeltingLag(base, ref, neutral), tol)

	in := neutral
	in.ChargeRate = 6.5
	assert.InDelta(t, 50, MeltingLag(base, ref, in), tol)

	in = neutral
	in.BlastVolume = 4200
	assert.InDelta(t, 50, MeltingLag(base, ref, in), tol)

	in = neutral
	in.OxygenPct = 4
	assert.InDelta(t, 55, MeltingLag(base, ref, in), tol)

	in = neutral
	in.Humidification = 30
	assert.InDelta(t, 70, MeltingLag(base, ref, in), tol)

	in = neutral
	in.BaseReductionEff = 0.8
	assert.InDelta(t, 63, MeltingLag(base, ref, in), tol)

	in = neutral
	in.ChargeRate = 20
	assert.Zero(t, MeltingLag(base, ref, in))
}

func TestEffectiveChargeRate(t *testing.T) {
	ref := DefaultLagReference()
	assert.Equal(t, 6.0, effectiveChargeRate(models.ChargeProgress{Mode: models.ChargeModeRate, ChargeRate: 6}, 60, ref))
	assert.Equal(t, 6.0, effectiveChargeRate(models.ChargeProgress{Mode: models.ChargeModeCount, ChargeCount: 12}, 120, ref))
	assert.Equal(t, 5.5, effectiveChargeRate(models.ChargeProgress{Mode: models.ChargeModeCount, ChargeCount: 0}, 0, ref))
}

func TestReductionEfficiency_NeutralAndCorrections(t *testing.T) {
	p := neutralParams()
	assert.InDelta(t, 1.0, ReductionBreakdown(p).Product(), tol)
	assert.InDelta(t, 0.9, ReductionEfficiency(p), tol)

	p.Charge.OreSizeMM = 10 // size = (2 + 1) / 2
	p.Process.OxygenEnrichmentPct = 5
	p.Process.Humidification = 10
	p.Chemistry.SlagFeOPct = 0.5
	p.Chemistry.HotMetalSiPct = 0.5
	p.Process.HotMetalTempC = 1520
	p.Chemistry.K = 1.1

	f := ReductionBreakdown(p)
	assert.InDelta(t, 1.5, f.Size, tol)
	assert.InDelta(t, 1.5, f.Oxygen, tol)
	assert.InDelta(t, 0.9, f.Humidity, tol)
	assert.InDelta(t, 0.95, f.FeO, tol)
	assert.InDelta(t, 1.1, f.Si, tol)
	assert.InDelta(t, 1.006, f.TempDeviation, tol)
	assert.Equal(t, 1.0, f.PCI)
	assert.Equal(t, 1.0, f.IronRate)

	want := 1.5 * 1.5 * 0.9 * 0.95 * 1.1 * 1.006 * 1.1 * 0.9
	assert.InDelta(t, want, ReductionEfficiency(p), tol)
}

func TestReductionEfficiency_ReactionRateChain(t *testing.T) {
	p := neutralParams()
	p.Options.CorrectionChain = models.ChainReactionRate
	p.Chemistry.SlagFeOPct = 5 // ignored by this chain
	p.Process.HotBlastTempC = 1200
	p.Process.PCIRate = 200
	p.Process.IronGenerationRate = 9.9

	f := ReductionBreakdown(p)
	assert.Equal(t, 1.0, f.FeO)
	assert.Equal(t, 1.0, f.Si)
	assert.InDelta(t, 1.03, f.TempDeviation, tol)
	assert.InDelta(t, 1.01, f.PCI, tol)
	assert.InDelta(t, 1.1, f.IronRate, tol)

	p.Charge.MeltingCapacity = 3000
	p.Process.BlastVolume = 4800
	p.Process.TopPressure = 3.5
	p.Process.BlastPressure = 4.5
	f = ReductionBreakdown(p)
	assert.InDelta(t, 1.05, f.Melting, tol)
	assert.InDelta(t, 1.1, f.Gas, tol)
	assert.InDelta(t, 1.05, f.TopPressure, tol)
	assert.InDelta(t, 1.03, f.BlastPressure, tol)
}

func TestTargetTemperature(t *testing.T) {
	proc := models.ProcessIndices{OxygenEnrichmentPct: 3, BlastVolume: 4200, TopPressure: 3}
	// offset = 15 + 4 + 0 + 4 = 23
	assert.InDelta(t, 1523, TargetTemperature(proc, 2.25, 1), tol)
	assert.InDelta(t, 1511.5, TargetTemperature(proc, 2.25, 0.5), tol)
	assert.InDelta(t, 1527.6, TargetTemperature(proc, 2.25, 3), tol)
	assert.InDelta(t, 1511.5, TargetTemperature(proc, 2.25, 0.1), tol)
	assert.InDelta(t, 1528, TargetTemperature(proc, 2.75, 1), tol)
}
