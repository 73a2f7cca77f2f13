package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
)

// Server exposes playback over HTTP. All mutations go through the
// engine's command queue; reads come from the latest broadcast
// snapshot, so the server never touches engine internals.
type Server struct {
	engine  *playback.Engine
	library *library.Library
	srv     *http.Server
	ln      net.Listener
	sub     *playback.Subscription

	mu     sync.RWMutex
	status playback.Status
}

// New creates a server listening on port once started. It subscribes to
// the engine immediately so the first broadcast is never missed.
func New(engine *playback.Engine, lib *library.Library, port int) *Server {
	s := &Server{
		engine:  engine,
		library: lib,
		sub:     engine.Subscribe(),
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go s.consumeStatus()
	return s
}

// Start binds the port and begins serving. A bind failure is returned
// to the caller; anything after that is logged per connection.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("bind remote port: %w", err)
	}
	s.ln = ln
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("remote server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests. WebSocket connections close on
// their own when the engine's broadcaster closes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.engine.Unsubscribe(s.sub)
	return s.srv.Shutdown(ctx)
}

// consumeStatus keeps the latest broadcast snapshot for /api/status and
// for the initial frame of new WebSocket clients.
func (s *Server) consumeStatus() {
	for {
		select {
		case st := <-s.sub.Status:
			s.mu.Lock()
			s.status = st
			s.mu.Unlock()
		case <-s.sub.Done:
			return
		}
	}
}

func (s *Server) currentStatus() playback.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/tracks", s.handleTracks)
	mux.HandleFunc("POST /api/toggle", s.command(playback.TogglePlay{}))
	mux.HandleFunc("POST /api/next", s.command(playback.Next{}))
	mux.HandleFunc("POST /api/prev", s.command(playback.Previous{}))
	mux.HandleFunc("POST /api/shuffle", s.command(playback.ToggleShuffle{}))
	mux.HandleFunc("POST /api/repeat", s.command(playback.CycleRepeat{}))
	mux.HandleFunc("POST /api/theme", s.command(playback.CycleTheme{}))
	mux.HandleFunc("POST /api/visualizer", s.command(playback.CycleVisualizer{}))
	mux.HandleFunc("POST /api/sleep", s.command(playback.CycleSleepTimer{}))
	mux.HandleFunc("POST /api/volume", s.handleVolume)
	mux.HandleFunc("POST /api/seek", s.handleSeek)
	mux.HandleFunc("POST /api/speed", s.handleSpeed)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, newStatusPayload(s.currentStatus()))
}

func (s *Server) handleTracks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, trackList(s.library))
}

// command builds a handler that enqueues a fixed command.
func (s *Server) command(cmd playback.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.engine.Enqueue(cmd)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	v, err := floatParam(r, "v")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.engine.Enqueue(playback.SetVolume{Level: v})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	t, err := floatParam(r, "t")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.engine.Enqueue(playback.SeekAbsolute{Position: secondsToDuration(t)})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if ratio, err := floatParam(r, "s"); err == nil {
		s.engine.Enqueue(playback.SetSpeed{Ratio: ratio})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	delta, err := floatParam(r, "d")
	if err != nil {
		http.Error(w, "missing s or d parameter", http.StatusBadRequest)
		return
	}
	s.engine.Enqueue(playback.SpeedDelta{Delta: delta})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}
	s.engine.Enqueue(playback.SelectTrack{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("remote response write failed", "error", err)
	}
}
