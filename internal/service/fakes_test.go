package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"molten_balance/internal/engine"
	"molten_balance/internal/models"
)

var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func at(h, m int) time.Time {
	return time.Date(2026, 3, 4, h, m, 0, 0, time.UTC)
}

func testEngine() *engine.Engine {
	e, err := engine.New(engine.Settings{
		ShiftStartHour: 7,
		Location:       time.UTC,
		LagReference:   engine.DefaultLagReference(),
		Thresholds:     engine.DefaultThresholds(),
	})
	if err != nil {
		panic(err)
	}
	return e
}

func validParams() models.OperatingParams {
	return models.OperatingParams{
		Charge: models.ChargeParameters{
			OrePerChargeTon:  165,
			CokePerChargeTon: 40,
			OreCokeRatio:     4.1,
			IronContentPct:   58,
			SlagRatio:        2.25,
			OreSizeMM:        20,
			CokeSizeMM:       60,
			BaseReductionEff: 1,
			MeltingCapacity:  2500,
			FurnaceVolumeM3:  5250,
		},
		Process: models.ProcessIndices{
			BlastVolume:        4000,
			TopPressure:        2.5,
			BlastPressure:      3.5,
			HotBlastTempC:      1100,
			PCIRate:            150,
			IronGenerationRate: 9,
			HotMetalTempC:      1500,
		},
		Chemistry: models.ChemistryCorrection{K: 1},
		Progress:  models.ChargeProgress{Mode: models.ChargeModeRate, ChargeRate: 5.5},
		Taps: models.TapRecord{
			LeadStart:      at(7, 30),
			FollowStart:    at(8, 0),
			LeadSpeed:      4.8,
			FollowSpeed:    4.8,
			LeadTargetTon:  1215,
			CompletedTaps:  5,
			PlannedTaps:    9,
			FixedAvgTapTon: 135,
		},
		Tapholes: models.TapholeAssignment{Pool: []int{1, 2, 3, 4}, Lead: 1, Follow: 3, LastClosed: 2},
		Lag:      models.MeltingLagConfig{BaseMinutes: 60},
		Options: models.Options{
			ProductionModel:  models.ProductionCharge,
			TapOutputSource:  models.TapOutputFixed,
			AlarmPolicy:      models.AlarmByRate,
			CorrectionChain:  models.ChainChargeBalance,
			CorrectionFactor: 1,
		},
		DailyPlanTon: 10935,
	}
}

type fakeParamsRepo struct {
	stored  models.OperatingParams
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeParamsRepo) Save(_ context.Context, p models.OperatingParams) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.stored = p
	return nil
}

func (f *fakeParamsRepo) Load(context.Context) (models.OperatingParams, error) {
	return f.stored, f.loadErr
}

type fakeReportRepo struct {
	mu        sync.Mutex
	records   []models.BalanceRecord
	appendErr error

	gotFrom, gotTo time.Time
	gotStatus      string
}

func (f *fakeReportRepo) Append(_ context.Context, rec models.BalanceRecord) (models.BalanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return models.BalanceRecord{}, f.appendErr
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeReportRepo) List(_ context.Context, from, to time.Time, status string) ([]models.BalanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFrom, f.gotTo, f.gotStatus = from, to, status
	return append([]models.BalanceRecord(nil), f.records...), nil
}

func (f *fakeReportRepo) Latest(context.Context) (*models.BalanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) == 0 {
		return nil, nil
	}
	rec := f.records[len(f.records)-1]
	return &rec, nil
}

type fakePublisher struct {
	published []models.BalanceRecord
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, rec models.BalanceRecord) error {
	f.published = append(f.published, rec)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

var errDown = errors.New("down")

// fakeEventRepo keeps appended events in memory and filters them like the
// SQLite repository does.
type fakeEventRepo struct {
	appended  []models.BalanceEvent
	appendErr error
	listErr   error

	lists     int
	lastQuery LogFilter
}

func (f *fakeEventRepo) Append(_ context.Context, e models.BalanceEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if e.EventID == "" {
		e.EventID = fmt.Sprintf("ev-%d", len(f.appended)+1)
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.BalanceEvent, error) {
	f.lists++
	f.lastQuery = LogFilter{From: from, To: to, Type: typ}
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.BalanceEvent
	for _, e := range f.appended {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) types() []string {
	out := make([]string, len(f.appended))
	for i, e := range f.appended {
		out[i] = e.Type
	}
	return out
}
