package live

import (
	"encoding/json"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"harvestsim/internal/protocol"
)

func dialTestServer(t *testing.T, loop *Loop) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(NewServer(loop, log.New(testWriter{t}, "", 0)).WSHandler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func readFrame(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal frame %s: %v", raw, err)
	}
}

func subscribe(t *testing.T, conn *websocket.Conn) protocol.HelloMsg {
	t.Helper()
	sub := protocol.SubscribeMsg{Type: protocol.TypeSubscribe, ProtocolVersion: protocol.Version}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}
	var hello protocol.HelloMsg
	readFrame(t, conn, &hello)
	if hello.Type != protocol.TypeHello {
		t.Fatalf("expected hello, got %+v", hello)
	}
	return hello
}

func TestServerHandshake(t *testing.T) {
	loop := newTestLoop(t)
	conn := dialTestServer(t, loop)

	hello := subscribe(t, conn)
	if hello.SessionID == "" {
		t.Fatal("hello missing session id")
	}
	if len(hello.Specs) != 3 {
		t.Fatalf("expected 3 mode specs, got %d", len(hello.Specs))
	}
	if len(hello.History) != 1 || hello.History[0].Year != 0 {
		t.Fatalf("expected year-0 history, got %+v", hello.History)
	}
	if hello.Status.Running {
		t.Fatal("fresh run should report paused")
	}
}

func TestServerRejectsBadSubscribe(t *testing.T) {
	loop := newTestLoop(t)
	conn := dialTestServer(t, loop)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"nope"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected close after bad subscribe")
	}
}

func TestServerControlFlow(t *testing.T) {
	loop := newTestLoop(t)
	conn := dialTestServer(t, loop)
	subscribe(t, conn)

	// Start the run.
	if err := conn.WriteJSON(protocol.ControlMsg{Type: protocol.TypeToggleRun}); err != nil {
		t.Fatalf("write toggle: %v", err)
	}
	var status protocol.StatusMsg
	readFrame(t, conn, &status)
	if status.Type != protocol.TypeStatus || !status.Running {
		t.Fatalf("expected running status, got %+v", status)
	}

	// A scheduler beat streams one state frame.
	pt, stepped := loop.Tick()
	if !stepped {
		t.Fatal("expected a step")
	}
	var state protocol.StateMsg
	readFrame(t, conn, &state)
	if state.Type != protocol.TypeState || state.Year != pt.Year {
		t.Fatalf("expected state for year %d, got %+v", pt.Year, state)
	}
	if state.Total != pt.Stages.Total() {
		t.Fatalf("total %f does not match stages %+v", state.Total, state.Stages)
	}

	// Reset rewinds to year 0 without pausing.
	if err := conn.WriteJSON(protocol.ControlMsg{Type: protocol.TypeReset}); err != nil {
		t.Fatalf("write reset: %v", err)
	}
	readFrame(t, conn, &status)
	if status.Year != 0 || !status.Running {
		t.Fatalf("expected running year-0 status, got %+v", status)
	}
}

func TestServerSetHarvestAndRate(t *testing.T) {
	loop := newTestLoop(t)
	conn := dialTestServer(t, loop)
	subscribe(t, conn)

	if err := conn.WriteJSON(protocol.ControlMsg{
		Type:    protocol.TypeSetHarvest,
		Harvest: [3]float64{0.1, 0.2, 0.3},
	}); err != nil {
		t.Fatalf("write set_harvest: %v", err)
	}
	var status protocol.StatusMsg
	readFrame(t, conn, &status)
	if status.Harvest != [3]float64{0.1, 0.2, 0.3} {
		t.Fatalf("harvest not applied: %+v", status)
	}

	if err := conn.WriteJSON(protocol.ControlMsg{Type: protocol.TypeSetRate, RateHz: 4}); err != nil {
		t.Fatalf("write set_rate: %v", err)
	}
	readFrame(t, conn, &status)
	if status.RateHz < 3.99 || status.RateHz > 4.01 {
		t.Fatalf("rate not applied: %+v", status)
	}
}

func TestServerRejectsInvalidControl(t *testing.T) {
	loop := newTestLoop(t)
	conn := dialTestServer(t, loop)
	subscribe(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"set_rate","rate_hz":0}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var errMsg protocol.ErrorMsg
	readFrame(t, conn, &errMsg)
	if errMsg.Type != protocol.TypeError || errMsg.Message == "" {
		t.Fatalf("expected error frame, got %+v", errMsg)
	}

	// Unknown mode is rejected at selection time.
	if err := conn.WriteJSON(protocol.ControlMsg{Type: protocol.TypeSetMode, Mode: "lottery"}); err != nil {
		t.Fatalf("write set_mode: %v", err)
	}
	readFrame(t, conn, &errMsg)
	if errMsg.Type != protocol.TypeError {
		t.Fatalf("expected error frame, got %+v", errMsg)
	}
}
