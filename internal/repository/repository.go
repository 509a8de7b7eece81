package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"molten_balance/internal/models"
)

type OperatorRepo interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

type ParamsRepo interface {
	Save(ctx context.Context, p models.OperatingParams) error
	Load(ctx context.Context) (models.OperatingParams, error)
}

type ReportRepo interface {
	Append(ctx context.Context, rec models.BalanceRecord) (models.BalanceRecord, error)
	List(ctx context.Context, from, to time.Time, status string) ([]models.BalanceRecord, error)
	Latest(ctx context.Context) (*models.BalanceRecord, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.BalanceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.BalanceEvent, error)
}

type Repository struct {
	ParamsRepo   ParamsRepo
	ReportRepo   ReportRepo
	EventRepo    EventRepo
	OperatorRepo OperatorRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ParamsRepo:   NewParamsSQLite(db),
		ReportRepo:   NewReportSQLite(db),
		EventRepo:    NewEventSQLite(db),
		OperatorRepo: NewOperatorRepository(db),
	}
}

// Timestamps are stored as fixed-width UTC text so that lexical order in
// SQLite matches chronological order.
const timestampLayout = "2006-01-02 15:04:05.000000000"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
