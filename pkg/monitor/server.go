// Package monitor provides a read-only status server for the motion
// planner: a JSON snapshot endpoint, Prometheus metrics, and a websocket
// feed streaming planner status to subscribed clients.
package monitor

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fluidcnc-go-migration/pkg/errors"
	"fluidcnc-go-migration/pkg/log"
	"fluidcnc-go-migration/pkg/metrics"
)

// Status is one point-in-time view of the planner and its consumer.
type Status struct {
	Depth          int     `json:"depth"`
	CurrentIndex   int32   `json:"current_index"`
	ScheduleIndex  int32   `json:"schedule_index"`
	WriteIndex     int32   `json:"write_index"`
	Position       []int32 `json:"position_steps"`
	BlocksExecuted uint64  `json:"blocks_executed"`
	StepsExecuted  uint64  `json:"steps_executed"`
	MotionTimeSec  float64 `json:"motion_time_sec"`
}

// StatusSource supplies planner status snapshots. Implementations must be
// safe for concurrent use and must never mutate planner state.
type StatusSource interface {
	Status() Status
}

// Config holds the monitor server configuration.
type Config struct {
	// Addr is the HTTP address to listen on, e.g. ":8455".
	Addr string

	// Source supplies status snapshots.
	Source StatusSource

	// Metrics optionally exposes a registry at /metrics.
	Metrics *metrics.Registry

	// StreamInterval is the websocket push period. Default 250ms.
	StreamInterval time.Duration
}

// Server is the monitor HTTP/websocket server.
type Server struct {
	cfg        Config
	logger     *log.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader
	boundAddr  string

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a monitor server.
func New(cfg Config) *Server {
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = 250 * time.Millisecond
	}
	return &Server{
		cfg:     cfg,
		logger:  log.GetLogger("monitor"),
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins serving in the background. Returns once the listener is
// bound so callers can rely on the port being open.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/planner/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebsocket)
	if s.cfg.Metrics != nil {
		mux.Handle("/metrics", s.cfg.Metrics.Handler())
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrMonitor, "listen "+s.cfg.Addr)
	}

	s.boundAddr = listener.Addr().String()
	s.httpServer = &http.Server{Handler: mux}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("monitor server: %v", err)
		}
	}()

	s.logger.Info("monitor listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound listen address. Valid after Start.
func (s *Server) Addr() string { return s.boundAddr }

// Stop shuts the server down, closing all websocket clients.
func (s *Server) Stop() error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.cfg.Source.Status())
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug("websocket client connected: %s", conn.RemoteAddr())

	go s.streamStatus(conn)
}

// streamStatus pushes status snapshots until the client goes away.
func (s *Server) streamStatus(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	// Drain client frames so pings and close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.StreamInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(s.cfg.Source.Status()); err != nil {
				return
			}
		}
	}
}
