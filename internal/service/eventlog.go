package service

import (
	"context"

	"molten_balance/internal/models"
	"molten_balance/internal/repository"
)

// EventLogService reads the parameter and alarm history.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.BalanceEvent, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, f.From, f.To, f.Type)
}
