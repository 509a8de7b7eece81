package service

import (
	"errors"
	"testing"
	"time"

	"molten_balance/internal/models"
)

func TestReportFilter_Normalize(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	f, err := ReportFilter{
		From:   time.Date(2026, 3, 4, 16, 0, 0, 0, kst),
		Status: "  CAUTION ",
	}.normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !f.From.Equal(at(7, 0)) {
		t.Fatalf("from = %v, want %v", f.From, at(7, 0))
	}
	if !f.To.IsZero() {
		t.Fatalf("open upper bound should stay zero, got %v", f.To)
	}
	if f.Status != string(models.StatusCaution) {
		t.Fatalf("status = %q", f.Status)
	}
}

func TestReportFilter_NormalizeAcceptsEveryTier(t *testing.T) {
	for _, s := range []models.AlarmStatus{
		models.StatusNormal, models.StatusCaution, models.StatusCritical,
		models.StatusAdvisory, models.StatusExcess, models.StatusEmergency,
	} {
		if _, err := (ReportFilter{Status: string(s)}).normalize(); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
}

func TestReportFilter_NormalizeRejects(t *testing.T) {
	_, err := ReportFilter{Status: "excess"}.normalize()
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	_, err = ReportFilter{From: at(9, 0), To: at(8, 59)}.normalize()
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestLogFilter_Normalize(t *testing.T) {
	f, err := LogFilter{From: at(7, 0), To: at(7, 0), Type: "recompute_failed"}.normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if f.Type != models.EventRecomputeFailed || !f.From.Equal(f.To) {
		t.Fatalf("unexpected filter %+v", f)
	}

	if _, err := (LogFilter{Type: "START"}).normalize(); !errors.Is(err, ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}
}
