package service

import (
	"context"
	"io"
	"time"

	"molten_balance/internal/engine"
	"molten_balance/internal/logger"
	"molten_balance/internal/models"
	"molten_balance/internal/publisher"
	"molten_balance/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Balance produces balance records from the stored operating parameters.
type Balance interface {
	Recompute(ctx context.Context) (models.BalanceRecord, error)
	Latest(ctx context.Context) (models.BalanceRecord, error)
	Preview(ctx context.Context, p models.OperatingParams) (models.BalanceRecord, error)
}

// Parameters reads and replaces the operating parameter snapshot.
type Parameters interface {
	Get(ctx context.Context) (models.OperatingParams, error)
	Update(ctx context.Context, p models.OperatingParams) (models.BalanceRecord, error)
}

// Reports exposes the append-only report log.
type Reports interface {
	ListReports(ctx context.Context, f ReportFilter) ([]models.BalanceRecord, error)
	ExportCSV(ctx context.Context, f ReportFilter, w io.Writer) error
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.BalanceEvent, error)
}

// Ticker recomputes the balance on every clock tick.
// Stop via context cancellation in main() for graceful shutdown.
type Ticker interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Balance
	Parameters
	Reports
	EventLog
	Ticker
	Authorization
}

// Deps carries everything the services need besides the repositories.
type Deps struct {
	Engine    *engine.Engine
	Seed      models.OperatingParams // used until an operator saves parameters
	Publisher publisher.Publisher    // nil means no fan-out
	Log       *logger.Logger         // nil means discard
	Auth      AuthConfig
	Clock     func() time.Time // nil means time.Now
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	balance := NewBalanceService(repos.ParamsRepo, repos.ReportRepo, repos.EventRepo, deps)
	return &Service{
		Balance:       balance,
		Parameters:    NewParametersService(repos.ParamsRepo, repos.EventRepo, balance, deps),
		Reports:       NewReportsService(repos.ReportRepo, deps.Engine.Settings().Location),
		EventLog:      NewEventLogService(repos.EventRepo),
		Ticker:        NewTickerService(balance, deps.Log),
		Authorization: NewAuthService(repos.OperatorRepo, deps.Auth),
	}
}

func (d Deps) clock() func() time.Time {
	if d.Clock != nil {
		return d.Clock
	}
	return time.Now
}

func (d Deps) logOrNop() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Nop()
}
