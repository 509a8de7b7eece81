package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"molten_balance/internal/models"

	"github.com/google/uuid"
)

type ReportSQLite struct {
	db *sql.DB
}

func NewReportSQLite(db *sql.DB) *ReportSQLite { return &ReportSQLite{db: db} }

const (
	insertReportSQL = `
		INSERT INTO balance_reports (id, recorded_at, status, residual_ton, residual_rate, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectReportsSQL = `SELECT body FROM balance_reports`
	selectLatestSQL  = `SELECT body FROM balance_reports ORDER BY recorded_at DESC LIMIT 1`
)

// Append stores an immutable copy of rec, assigning an ID when it has none.
func (r *ReportSQLite) Append(ctx context.Context, rec models.BalanceRecord) (models.BalanceRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return models.BalanceRecord{}, fmt.Errorf("encode balance record: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertReportSQL,
		rec.ID,
		formatTimestamp(rec.Timestamp),
		string(rec.Status),
		rec.ResidualTon,
		rec.ResidualRate,
		string(body),
	)
	if err != nil {
		return models.BalanceRecord{}, fmt.Errorf("insert balance record: %w", err)
	}
	return rec, nil
}

// List returns records within [from, to] (either bound may be zero) and
// optionally with the given status, oldest first.
func (r *ReportSQLite) List(ctx context.Context, from, to time.Time, status string) ([]models.BalanceRecord, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "recorded_at >= ?")
		args = append(args, formatTimestamp(from))
	}
	if !to.IsZero() {
		conds = append(conds, "recorded_at <= ?")
		args = append(args, formatTimestamp(to))
	}
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}

	q := selectReportsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY recorded_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query balance records: %w", err)
	}
	defer rows.Close()

	out := make([]models.BalanceRecord, 0, 64)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan balance record: %w", err)
		}
		rec, err := decodeRecord(body)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance records: %w", err)
	}
	return out, nil
}

// Latest returns the newest record, or nil when the log is empty.
func (r *ReportSQLite) Latest(ctx context.Context) (*models.BalanceRecord, error) {
	var body string
	if err := r.db.QueryRowContext(ctx, selectLatestSQL).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest balance record: %w", err)
	}
	rec, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeRecord(body string) (models.BalanceRecord, error) {
	var rec models.BalanceRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return models.BalanceRecord{}, fmt.Errorf("decode balance record: %w", err)
	}
	return rec, nil
}
