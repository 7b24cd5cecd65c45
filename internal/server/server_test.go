package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine"
	"rotten-soup/internal/network"
	"rotten-soup/pkg/api"
	"rotten-soup/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type staticSummary struct {
	snap engine.Summary
}

func (s staticSummary) Summary() engine.Summary { return s.snap }

func newTestServer(t *testing.T) (*Server, *engine.ChanInput, *httptest.Server) {
	t.Helper()

	game := staticSummary{snap: engine.Summary{
		Turn:   4,
		Active: "overworld",
		Levels: []engine.LevelSummary{
			{Name: "overworld", Style: "OVERWORLD", Width: 40, Height: 20, Active: true},
			{Name: "dungeon-1", Style: "DUNGEON", Width: 40, Height: 20, Depth: 1},
		},
		Queue: []map[string]interface{}{{"name": "display"}, {"name": "player"}},
	}}

	hub := network.NewBroadcaster()
	input := engine.NewChanInput(8)
	srv := New(game, hub, network.NewFrameSink(hub), input, "0")

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, input, ts
}

func TestServer_Health(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header is missing")
	}
}

func TestServer_Version(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatalf("GET /version: %v", err)
	}
	defer resp.Body.Close()

	var info map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := info["Version"]; !ok {
		t.Errorf("version info = %v", info)
	}
}

func TestDebugHandler(t *testing.T) {
	_, _, ts := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/debug/levels", http.StatusOK, `"dungeon-1"`},
		{"/debug/level?name=dungeon-1", http.StatusOK, `"depth":1`},
		{"/debug/level?name=cave-9", http.StatusNotFound, "not found"},
		{"/debug/queue", http.StatusOK, `"display"`},
		{"/debug/summary", http.StatusOK, `"active":"overworld"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body = %s, want substring %s", body, tt.wantBody)
			}
		})
	}
}

func TestToCommand(t *testing.T) {
	tests := []struct {
		name    string
		msg     api.ClientCommand
		want    domain.ActionType
		wantErr error
	}{
		{"move", api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":1,"dy":0}`)}, domain.ActionMove, nil},
		{"select cell", api.ClientCommand{Action: "SELECT_AT", Payload: json.RawMessage(`{"col":4,"row":7}`)}, domain.ActionSelectAt, nil},
		{"lower case", api.ClientCommand{Action: "wait"}, domain.ActionWait, nil},
		{"null payload", api.ClientCommand{Action: "FIRE", Payload: json.RawMessage(`null`)}, domain.ActionFire, nil},
		{"empty action", api.ClientCommand{}, domain.ActionUnknown, ErrUnknownAction},
		{"unknown", api.ClientCommand{Action: "DANCE"}, domain.ActionUnknown, ErrUnknownAction},
		{"init is reserved", api.ClientCommand{Action: "INIT"}, domain.ActionUnknown, ErrReservedAction},
		{"broken payload", api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":`)}, domain.ActionUnknown, ErrMalformedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ToCommand(tt.msg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ToCommand() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && cmd.Action != tt.want {
				t.Errorf("ToCommand() action = %v, want %v", cmd.Action, tt.want)
			}
		})
	}
}

func TestServer_WebSocket(t *testing.T) {
	srv, input, ts := newTestServer(t)

	// Кадр, отрисованный до подключения клиента
	srv.Frames.SetStatus(engine.Status{Turn: 1, Level: "overworld", Width: 1, Height: 1})
	if err := srv.Frames.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame api.FrameMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read last frame: %v", err)
	}
	if frame.Type != api.MessageFrame || frame.Level != "overworld" {
		t.Errorf("frame = %+v", frame)
	}

	// Невалидная команда отбрасывается, валидная попадает в очередь
	_ = conn.WriteJSON(api.ClientCommand{Action: "DANCE"})
	_ = conn.WriteJSON(api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":0,"dy":1}`)})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cmd, err := input.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if cmd.Action != domain.ActionMove {
		t.Errorf("pushed action = %v, want MOVE", cmd.Action)
	}

	// Новые кадры рассылаются всем подключённым
	srv.Frames.SetStatus(engine.Status{Turn: 2, Level: "dungeon-1", Width: 1, Height: 1})
	_ = srv.Frames.Flush()
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read broadcast frame: %v", err)
	}
	if frame.Turn != 2 || frame.Level != "dungeon-1" {
		t.Errorf("broadcast frame = %+v", frame)
	}
}
