package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"molten_balance/internal/models"
)

type ParamsSQLite struct {
	db *sql.DB
}

func NewParamsSQLite(db *sql.DB) *ParamsSQLite {
	return &ParamsSQLite{db: db}
}

const (
	operatingParamsRowID = 1

	upsertParamsSQL = `
		INSERT INTO operating_params (id, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			body=excluded.body,
			updated_at=excluded.updated_at
	`

	selectParamsSQL = `SELECT body, updated_at FROM operating_params WHERE id=?`
)

// Save replaces the stored snapshot (id always 1). UpdatedAt is set to now
// when zero.
func (r *ParamsSQLite) Save(ctx context.Context, p models.OperatingParams) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	p.UpdatedAt = p.UpdatedAt.UTC()

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode operating params: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, upsertParamsSQL, operatingParamsRowID, string(body), formatTimestamp(p.UpdatedAt)); err != nil {
		return fmt.Errorf("save operating params: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or the zero value when nothing was saved.
func (r *ParamsSQLite) Load(ctx context.Context) (models.OperatingParams, error) {
	var body, updated string
	err := r.db.QueryRowContext(ctx, selectParamsSQL, operatingParamsRowID).Scan(&body, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OperatingParams{}, nil
		}
		return models.OperatingParams{}, fmt.Errorf("load operating params: %w", err)
	}

	var p models.OperatingParams
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return models.OperatingParams{}, fmt.Errorf("decode operating params: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.OperatingParams{}, err
	}
	return p, nil
}
