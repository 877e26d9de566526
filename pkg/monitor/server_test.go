package monitor

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"fluidcnc-go-migration/pkg/metrics"
)

type fakeSource struct {
	status Status
}

func (f *fakeSource) Status() Status { return f.status }

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	src := &fakeSource{status: Status{
		Depth:          3,
		WriteIndex:     7,
		BlocksExecuted: 42,
		Position:       []int32{100, 200},
	}}

	reg := metrics.NewRegistry()
	reg.NewCounter("planner_blocks_planned_total", "blocks").Add(42)

	s := New(Config{
		Addr:           "127.0.0.1:0",
		Source:         src,
		Metrics:        reg,
		StreamInterval: 10 * time.Millisecond,
	})
	if err := s.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(func() { s.Stop() })

	return s, s.Addr()
}

func TestStatusEndpoint(t *testing.T) {
	_, addr := startTestServer(t)

	resp, err := http.Get("http://" + addr + "/planner/status")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if status.Depth != 3 || status.WriteIndex != 7 || status.BlocksExecuted != 42 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestStatusEndpointRejectsPost(t *testing.T) {
	_, addr := startTestServer(t)

	resp, err := http.Post("http://"+addr+"/planner/status", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, addr := startTestServer(t)

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "planner_blocks_planned_total 42") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}

func TestWebsocketStream(t *testing.T) {
	_, addr := startTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var status Status
	if err := conn.ReadJSON(&status); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if status.Depth != 3 {
		t.Errorf("streamed status %+v, want depth 3", status)
	}
}
