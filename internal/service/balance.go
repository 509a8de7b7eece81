package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"molten_balance/internal/engine"
	"molten_balance/internal/logger"
	"molten_balance/internal/models"
	"molten_balance/internal/publisher"
	"molten_balance/internal/repository"
)

type BalanceService struct {
	engine    *engine.Engine
	params    repository.ParamsRepo
	reports   repository.ReportRepo
	events    repository.EventRepo
	publisher publisher.Publisher
	log       *logger.Logger
	seed      models.OperatingParams
	now       func() time.Time

	// serializes recomputes so each alarm transition is judged against the
	// record appended just before it
	mu sync.Mutex
	// last recompute failure already recorded; guarded by mu
	lastFailure string
}

func NewBalanceService(params repository.ParamsRepo, reports repository.ReportRepo, events repository.EventRepo, deps Deps) *BalanceService {
	pub := deps.Publisher
	if pub == nil {
		pub = publisher.Nop{}
	}
	return &BalanceService{
		engine:    deps.Engine,
		params:    params,
		reports:   reports,
		events:    events,
		publisher: pub,
		log:       deps.logOrNop(),
		seed:      deps.Seed,
		now:       deps.clock(),
	}
}

// Recompute evaluates the stored parameters at the current instant, appends
// the record to the report log and fans it out.
func (s *BalanceService) Recompute(ctx context.Context) (models.BalanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked(ctx)
}

func (s *BalanceService) recomputeLocked(ctx context.Context) (models.BalanceRecord, error) {
	p, err := currentParams(ctx, s.params, s.seed)
	if err != nil {
		return models.BalanceRecord{}, err
	}

	now := s.now()
	rec, err := s.engine.Compute(p, now)
	if err != nil {
		s.recordFailure(ctx, now, err)
		return models.BalanceRecord{}, err
	}

	prev, err := s.reports.Latest(ctx)
	if err != nil {
		return models.BalanceRecord{}, err
	}
	if rec, err = s.reports.Append(ctx, rec); err != nil {
		return models.BalanceRecord{}, err
	}

	if prev != nil && prev.Status != rec.Status {
		s.log.Infow("alarm_changed", "from", prev.Status, "to", rec.Status, "residual_ton", rec.ResidualTon)
		s.appendEvent(ctx, models.BalanceEvent{
			OccurredAt:  now,
			Type:        models.EventAlarmChanged,
			Description: fmt.Sprintf("Alarm changed from %s to %s", prev.Status, rec.Status),
			Metadata: map[string]any{
				"from":              prev.Status,
				"to":                rec.Status,
				"residual_ton":      rec.ResidualTon,
				"residual_rate_pct": rec.ResidualRate,
			},
		})
	}

	if s.lastFailure != "" {
		s.log.Infow("balance_recompute_recovered", "previous_error", s.lastFailure)
		s.lastFailure = ""
	}

	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.log.Warnw("publish_failed", "record_id", rec.ID, "error", err)
	}

	s.log.Debugw("balance_recomputed",
		"record_id", rec.ID,
		"residual_ton", rec.ResidualTon,
		"residual_rate_pct", rec.ResidualRate,
		"status", rec.Status,
	)
	return rec, nil
}

// Latest returns the newest logged record, recomputing when the log is empty.
// Concurrent callers on an empty log produce a single record.
func (s *BalanceService) Latest(ctx context.Context) (models.BalanceRecord, error) {
	rec, err := s.reports.Latest(ctx)
	if err != nil {
		return models.BalanceRecord{}, err
	}
	if rec != nil {
		return *rec, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, err = s.reports.Latest(ctx); err != nil {
		return models.BalanceRecord{}, err
	}
	if rec != nil {
		return *rec, nil
	}
	return s.recomputeLocked(ctx)
}

// Preview computes a record for p without persisting or publishing it.
func (s *BalanceService) Preview(_ context.Context, p models.OperatingParams) (models.BalanceRecord, error) {
	return s.engine.Compute(p, s.now())
}

// recordFailure logs a failed compute and records RECOMPUTE_FAILED only when
// the failure differs from the one already recorded. Caller holds mu.
func (s *BalanceService) recordFailure(ctx context.Context, now time.Time, err error) {
	msg := err.Error()
	if msg == s.lastFailure {
		s.log.Debugw("balance_recompute_failed", "error", err, "repeated", true)
		return
	}
	s.lastFailure = msg
	s.log.Errorw("balance_recompute_failed", "error", err)
	s.appendEvent(ctx, models.BalanceEvent{
		OccurredAt:  now,
		Type:        models.EventRecomputeFailed,
		Description: msg,
	})
}

func (s *BalanceService) appendEvent(ctx context.Context, e models.BalanceEvent) {
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warnw("event_append_failed", "type", e.Type, "error", err)
	}
}

// currentParams loads the saved snapshot, falling back to seed when none
// has been saved yet.
func currentParams(ctx context.Context, repo repository.ParamsRepo, seed models.OperatingParams) (models.OperatingParams, error) {
	p, err := repo.Load(ctx)
	if err != nil {
		return models.OperatingParams{}, err
	}
	if p.UpdatedAt.IsZero() {
		return seed, nil
	}
	return p, nil
}
