package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"molten_balance/internal/logger"
	"molten_balance/internal/models"
	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = wsPongWait * 9 / 10
	wsReadLimit = 4 << 10

	streamDefaultEvery = time.Second
	streamMaxEvery     = 10 * time.Second
)

// Envelope types on /ws.
const (
	envBalance = "balance"
	envAlarm   = "alarm"
	envError   = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// alarmShift is pushed ahead of a balance record whose status differs from
// the one the client saw last.
type alarmShift struct {
	From        models.AlarmStatus `json:"from"`
	To          models.AlarmStatus `json:"to"`
	ResidualTon float64            `json:"residual_ton"`
	At          time.Time          `json:"at"`
}

// The stream is read-only, so origins are not checked.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// @Summary      Live balance stream
// @Description  WebSocket; sends {"type":"balance","data":record} every interval (default 1s, max 10s) and {"type":"alarm"} when the status changes.
// @Tags         balance
// @Param        interval     query  string  false  "Go duration, e.g. 2s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	every := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &balanceStream{conn: conn, balance: h.services.Balance, log: h.log}
	s.run(c.Request.Context(), every)
}

// parseInterval accepts ?interval=<duration> first, then ?interval_ms=<n>.
// Anything missing, non-positive or above the cap falls back to one second.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	candidates := []func() (time.Duration, bool){
		func() (time.Duration, bool) {
			d, err := time.ParseDuration(c.Query("interval"))
			return d, err == nil
		},
		func() (time.Duration, bool) {
			n, err := strconv.Atoi(c.Query("interval_ms"))
			return time.Duration(n) * time.Millisecond, err == nil
		},
	}
	for _, next := range candidates {
		if d, ok := next(); ok && d > 0 && d <= streamMaxEvery {
			return d
		}
	}
	return streamDefaultEvery
}

// balanceStream serves one /ws client.
type balanceStream struct {
	conn    *websocket.Conn
	balance service.Balance
	log     *logger.Logger

	lastStatus models.AlarmStatus
}

func (s *balanceStream) run(ctx context.Context, every time.Duration) {
	s.conn.SetReadLimit(wsReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	closed := make(chan struct{})
	go s.drain(closed)

	if err := s.push(ctx); err != nil {
		s.info("ws_write_failed_initial", err)
		return
	}

	tick := time.NewTicker(every)
	defer tick.Stop()
	keepalive := time.NewTicker(wsPingEvery)
	defer keepalive.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-keepalive.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.info("ws_ping_failed", err)
				return
			}
		case <-tick.C:
			if err := s.push(ctx); err != nil {
				s.info("ws_write_failed", err)
				return
			}
		}
	}
}

// drain reads until the client goes away so control frames get processed.
func (s *balanceStream) drain(closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.info("ws_read_closed", err)
			return
		}
	}
}

// push sends the latest record, preceded by an alarm envelope when the
// status moved since the previous push. A failed lookup becomes an error
// envelope and keeps the stream open.
func (s *balanceStream) push(ctx context.Context) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	rec, err := s.balance.Latest(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("ws_get_balance_failed", "err", err)
		}
		return s.conn.WriteJSON(wsEnvelope{Type: envError, Error: errLoadBalance})
	}

	if s.lastStatus != "" && rec.Status != s.lastStatus {
		shift := alarmShift{From: s.lastStatus, To: rec.Status, ResidualTon: rec.ResidualTon, At: rec.Timestamp}
		if err := s.conn.WriteJSON(wsEnvelope{Type: envAlarm, Data: shift}); err != nil {
			return err
		}
	}
	s.lastStatus = rec.Status
	return s.conn.WriteJSON(wsEnvelope{Type: envBalance, Data: rec})
}

func (s *balanceStream) info(event string, err error) {
	if s.log != nil {
		s.log.Infow(event, "err", err)
	}
}
