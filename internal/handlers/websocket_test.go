package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"molten_balance/internal/models"
	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := map[string]time.Duration{
		"/ws":                                time.Second,
		"/ws?interval=200ms":                 200 * time.Millisecond,
		"/ws?interval_ms=150":                150 * time.Millisecond,
		"/ws?interval=20s":                   time.Second,
		"/ws?interval_ms=20000":              time.Second,
		"/ws?interval=-1s":                   time.Second,
		"/ws?interval=bogus":                 time.Second,
		"/ws?interval_ms=NaN":                time.Second,
		"/ws?interval=2s&interval_ms=150":    2 * time.Second,
		"/ws?interval=bogus&interval_ms=250": 250 * time.Millisecond,
	}
	for target, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		if got := h.parseInterval(c); got != want {
			t.Errorf("%s: got %v, want %v", target, got, want)
		}
	}
}

// statusSequence serves records in order and repeats the last one.
type statusSequence struct {
	mu   sync.Mutex
	recs []models.BalanceRecord
	next int
}

func (s *statusSequence) Latest(context.Context) (models.BalanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recs[s.next]
	if s.next < len(s.recs)-1 {
		s.next++
	}
	return rec, nil
}
func (s *statusSequence) Recompute(ctx context.Context) (models.BalanceRecord, error) {
	return s.Latest(ctx)
}
func (s *statusSequence) Preview(ctx context.Context, _ models.OperatingParams) (models.BalanceRecord, error) {
	return s.Latest(ctx)
}

func dialStream(t *testing.T, bal service.Balance, query string) *websocket.Conn {
	t.Helper()
	r := gin.New()
	r.GET("/ws", NewHandler(&service.Service{Balance: bal}, nil).wsConnect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme, u.Path, u.RawQuery = "ws", "/ws", query
	conn, _, err := (&websocket.Dialer{HandshakeTimeout: 2 * time.Second}).Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_PushesLatestRecordEachTick(t *testing.T) {
	bal := &mockBalance{rec: models.BalanceRecord{
		ProductionTon: 3200,
		TappedTon:     3000,
		ResidualTon:   200,
		ResidualRate:  6.25,
		Status:        models.StatusNormal,
		BitDiameterMM: 43,
	}}
	conn := dialStream(t, bal, "interval_ms=20")

	first := readEnvelope(t, conn)
	if first.Type != envBalance {
		t.Fatalf("first envelope: %+v", first)
	}
	var rec models.BalanceRecord
	if err := json.Unmarshal(first.Data, &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ResidualTon != 200 || rec.Status != models.StatusNormal || rec.BitDiameterMM != 43 {
		t.Fatalf("record: %+v", rec)
	}

	// Unchanged status: the next tick is a plain balance push.
	if env := readEnvelope(t, conn); env.Type != envBalance {
		t.Fatalf("second envelope: %+v", env)
	}
}

func TestWebSocket_StatusChangeSendsAlarmFirst(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 5, 0, 0, time.UTC)
	bal := &statusSequence{recs: []models.BalanceRecord{
		{ResidualTon: 180, Status: models.StatusNormal},
		{ResidualTon: 262, Status: models.StatusCaution, Timestamp: at},
	}}
	conn := dialStream(t, bal, "interval_ms=20")

	if env := readEnvelope(t, conn); env.Type != envBalance {
		t.Fatalf("initial: %+v", env)
	}

	alarm := readEnvelope(t, conn)
	if alarm.Type != envAlarm {
		t.Fatalf("want alarm envelope, got %+v", alarm)
	}
	var shift alarmShift
	if err := json.Unmarshal(alarm.Data, &shift); err != nil {
		t.Fatalf("decode alarm: %v", err)
	}
	if shift.From != models.StatusNormal || shift.To != models.StatusCaution ||
		shift.ResidualTon != 262 || !shift.At.Equal(at) {
		t.Fatalf("alarm: %+v", shift)
	}

	if env := readEnvelope(t, conn); env.Type != envBalance {
		t.Fatalf("record after alarm: %+v", env)
	}
	// Status is now stable at caution.
	if env := readEnvelope(t, conn); env.Type != envBalance {
		t.Fatalf("steady state: %+v", env)
	}
}

func TestWebSocket_LookupFailureSendsErrorEnvelope(t *testing.T) {
	conn := dialStream(t, &mockBalance{err: errors.New("sqlite busy")}, "")

	env := readEnvelope(t, conn)
	if env.Type != envError || env.Error != errLoadBalance {
		t.Fatalf("want error envelope, got %+v", env)
	}
}
