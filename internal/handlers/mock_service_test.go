package handlers

import (
	"context"
	"io"
	"time"

	"molten_balance/internal/models"
	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockBalance struct {
	rec          models.BalanceRecord
	err          error
	latestCalls  int
	recomputes   int
	lastPreview  models.OperatingParams
	previewCalls int
}

func (m *mockBalance) Recompute(context.Context) (models.BalanceRecord, error) {
	m.recomputes++
	return m.rec, m.err
}
func (m *mockBalance) Latest(context.Context) (models.BalanceRecord, error) {
	m.latestCalls++
	return m.rec, m.err
}
func (m *mockBalance) Preview(_ context.Context, p models.OperatingParams) (models.BalanceRecord, error) {
	m.previewCalls++
	m.lastPreview = p
	return m.rec, m.err
}

type mockParameters struct {
	params    models.OperatingParams
	getErr    error
	rec       models.BalanceRecord
	updateErr error

	lastUpdate   models.OperatingParams
	lastOperator int
	updates      int
}

func (m *mockParameters) Get(context.Context) (models.OperatingParams, error) {
	return m.params, m.getErr
}
func (m *mockParameters) Update(ctx context.Context, p models.OperatingParams) (models.BalanceRecord, error) {
	m.updates++
	m.lastUpdate = p
	m.lastOperator, _ = service.OperatorFrom(ctx)
	return m.rec, m.updateErr
}

type mockReports struct {
	resp       []models.BalanceRecord
	err        error
	csv        string
	lastFilter service.ReportFilter
}

func (m *mockReports) ListReports(_ context.Context, f service.ReportFilter) ([]models.BalanceRecord, error) {
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockReports) ExportCSV(_ context.Context, f service.ReportFilter, w io.Writer) error {
	m.lastFilter = f
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.csv)
	return err
}

type mockEventLog struct {
	resp     []models.BalanceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.BalanceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
