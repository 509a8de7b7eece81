package service

import (
	"context"
	"errors"
	"time"

	"molten_balance/internal/engine"
	"molten_balance/internal/logger"
	"molten_balance/internal/models"
	"molten_balance/internal/repository"
)

type ParametersService struct {
	params  repository.ParamsRepo
	events  repository.EventRepo
	balance Balance
	log     *logger.Logger
	seed    models.OperatingParams
	now     func() time.Time
}

func NewParametersService(params repository.ParamsRepo, events repository.EventRepo, balance Balance, deps Deps) *ParametersService {
	return &ParametersService{
		params:  params,
		events:  events,
		balance: balance,
		log:     deps.logOrNop(),
		seed:    deps.Seed,
		now:     deps.clock(),
	}
}

// Get returns the snapshot in effect with defaults applied.
func (s *ParametersService) Get(ctx context.Context) (models.OperatingParams, error) {
	p, err := currentParams(ctx, s.params, s.seed)
	if err != nil {
		return models.OperatingParams{}, err
	}
	return engine.Normalize(p), nil
}

// Update validates and stores p, then recomputes the balance with it.
// Rejected snapshots leave the stored one untouched.
func (s *ParametersService) Update(ctx context.Context, p models.OperatingParams) (models.BalanceRecord, error) {
	now := s.now()
	p = engine.Normalize(p)

	if err := engine.Validate(p); err != nil {
		s.log.Warnw("params_rejected", "error", err)
		meta := operatorMeta(ctx)
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			meta["problems"] = verr.Problems
		}
		s.appendEvent(ctx, models.BalanceEvent{
			OccurredAt:  now,
			Type:        models.EventParamsRejected,
			Description: "Operating parameters rejected",
			Metadata:    meta,
		})
		return models.BalanceRecord{}, err
	}

	p.UpdatedAt = now
	if err := s.params.Save(ctx, p); err != nil {
		return models.BalanceRecord{}, err
	}

	meta := operatorMeta(ctx)
	meta["production_model"] = p.Options.ProductionModel
	meta["tap_output_source"] = p.Options.TapOutputSource
	meta["alarm_policy"] = p.Options.AlarmPolicy
	meta["correction_chain"] = p.Options.CorrectionChain
	meta["completed_taps"] = p.Taps.CompletedTaps
	// the snapshot is already stored; a lost event must not hide the recompute
	s.appendEvent(ctx, models.BalanceEvent{
		OccurredAt:  now,
		Type:        models.EventParamsChanged,
		Description: "Operating parameters updated",
		Metadata:    meta,
	})
	s.log.Infow("params_changed", "operator_id", meta["operator_id"], "completed_taps", p.Taps.CompletedTaps,
		"lead", p.Tapholes.Lead, "follow", p.Tapholes.Follow)

	return s.balance.Recompute(ctx)
}

func (s *ParametersService) appendEvent(ctx context.Context, e models.BalanceEvent) {
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warnw("event_append_failed", "type", e.Type, "error", err)
	}
}

// operatorMeta starts event metadata with the acting operator, when known.
func operatorMeta(ctx context.Context) map[string]any {
	meta := map[string]any{}
	if id, ok := OperatorFrom(ctx); ok {
		meta["operator_id"] = id
	}
	return meta
}
