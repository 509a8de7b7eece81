package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"molten_balance/internal/models"
	"molten_balance/internal/repository"
)

// utf8BOM lets spreadsheet tools detect the export's encoding.
const utf8BOM = "\xEF\xBB\xBF"

const (
	csvTimeLayout  = "2006-01-02 15:04:05"
	csvClockLayout = "15:04"
)

var reportCSVHeader = []string{
	"timestamp",
	"shift_start",
	"elapsed_minutes",
	"elapsed_charges",
	"production_model",
	"reduction_factor",
	"lag_minutes",
	"production_ton",
	"hot_metal_ton",
	"slag_ton",
	"tapped_ton",
	"residual_ton",
	"residual_rate_pct",
	"alarm_policy",
	"status",
	"bit_diameter_mm",
	"next_tap_interval",
	"lead_close",
	"idle_gap_minutes",
	"avg_tap_ton",
	"avg_hot_metal_per_tap_ton",
	"avg_slag_per_tap_ton",
	"target_temp_c",
	"measured_temp_c",
	"active_tapholes",
	"standby_tapholes",
	"last_closed_taphole",
}

type ReportsService struct {
	reports repository.ReportRepo
	loc     *time.Location
}

// NewReportsService renders exported times in loc (the shift timezone).
func NewReportsService(reports repository.ReportRepo, loc *time.Location) *ReportsService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportsService{reports: reports, loc: loc}
}

func (s *ReportsService) ListReports(ctx context.Context, f ReportFilter) ([]models.BalanceRecord, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}
	return s.reports.List(ctx, f.From, f.To, f.Status)
}

// ExportCSV writes the selected records as CSV with a UTF-8 BOM and a
// header row.
func (s *ReportsService) ExportCSV(ctx context.Context, f ReportFilter, w io.Writer) error {
	recs, err := s.ListReports(ctx, f)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(reportCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		if err := cw.Write(s.csvRow(r)); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ReportsService) csvRow(r models.BalanceRecord) []string {
	return []string{
		s.formatTime(r.Timestamp, csvTimeLayout),
		s.formatTime(r.ShiftStart, csvTimeLayout),
		ff(r.ElapsedMinutes, 1),
		ff(r.ElapsedCharges, 2),
		string(r.ProductionModel),
		ff(r.ReductionFactor, 4),
		ff(r.LagMinutes, 1),
		ff(r.ProductionTon, 1),
		ff(r.HotMetalTon, 1),
		ff(r.SlagTon, 1),
		ff(r.TappedTon, 1),
		ff(r.ResidualTon, 1),
		ff(r.ResidualRate, 2),
		string(r.AlarmPolicy),
		string(r.Status),
		strconv.Itoa(r.BitDiameterMM),
		r.NextTapInterval,
		s.formatTime(r.LeadCloseAt, csvClockLayout),
		ff(r.IdleGapMinutes, 1),
		ff(r.AvgTapTon, 1),
		ff(r.AvgHotMetalPerTapTon, 1),
		ff(r.AvgSlagPerTapTon, 1),
		ff(r.TargetTempC, 1),
		ff(r.MeasuredTempC, 1),
		joinInts(r.ActiveTapholes),
		joinInts(r.StandbyTapholes),
		strconv.Itoa(r.LastClosedTaphole),
	}
}

func (s *ReportsService) formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(s.loc).Format(layout)
}

func ff(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
