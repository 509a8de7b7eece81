package service

import (
	"context"
	"time"

	"molten_balance/internal/logger"
)

const defaultTick = 10 * time.Second

// TickerService drives periodic recomputes.
type TickerService struct {
	balance Balance
	log     *logger.Logger
}

func NewTickerService(balance Balance, log *logger.Logger) *TickerService {
	if log == nil {
		log = logger.Nop()
	}
	return &TickerService{balance: balance, log: log}
}

// Run recomputes once immediately and then on every tick until ctx is canceled.
func (s *TickerService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = defaultTick
	}
	s.recompute(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.recompute(ctx)
		}
	}
}

func (s *TickerService) recompute(ctx context.Context) {
	if _, err := s.balance.Recompute(ctx); err != nil && ctx.Err() == nil {
		s.log.Warnw("tick_recompute_failed", "error", err)
	}
}
